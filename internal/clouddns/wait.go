/*
 * Wait - polling policy for change completion.
 *
 * Copyright 2026 Marco Confalonieri.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package clouddns

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// WaitOptions is the retry/backoff policy for WaitUntilDone. The previously
// caller-written sleep-and-retry loop lives here as a reusable component.
type WaitOptions struct {
	// InitialInterval is the delay before the second poll.
	InitialInterval time.Duration
	// MaxInterval caps the delay between polls.
	MaxInterval time.Duration
	// Jitter is the randomization factor applied to each interval, in
	// [0, 1].
	Jitter float64
	// MaxAttempts limits the number of polls; zero means no limit.
	MaxAttempts uint64
}

// DefaultWaitOptions returns the policy used by the CLI.
func DefaultWaitOptions() WaitOptions {
	return WaitOptions{
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
		Jitter:          0.5,
		MaxAttempts:     30,
	}
}

// WaitUntilDone polls the change request until its status flips to DONE,
// following the given policy. API failures abort immediately; exhausting
// MaxAttempts or the context returns the last pending state as an error.
// Calling it on an unsubmitted request fails with a state error.
func WaitUntilDone(ctx context.Context, change *ChangeRequest, opts WaitOptions) error {
	if !change.submitted() {
		return newError(KindState, actGetChange,
			"cannot wait for a change request that was not submitted")
	}
	if change.Done() {
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = opts.InitialInterval
	expo.MaxInterval = opts.MaxInterval
	expo.RandomizationFactor = opts.Jitter
	expo.MaxElapsedTime = 0

	var policy backoff.BackOff = backoff.WithContext(expo, ctx)
	if opts.MaxAttempts > 0 {
		policy = backoff.WithMaxRetries(policy, opts.MaxAttempts-1)
	}

	operation := func() error {
		if err := change.Reload(ctx); err != nil {
			return backoff.Permanent(err)
		}
		if !change.Done() {
			return fmt.Errorf("change %s is still %s", change.ID(), change.Status())
		}
		return nil
	}

	return backoff.Retry(operation, policy)
}
