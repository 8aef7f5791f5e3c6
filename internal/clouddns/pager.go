/*
 * Pager - token-based pagination protocol.
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

import "context"

// Page is one bounded slice of a paged listing. NextPageToken is empty
// exactly when the final page has been returned.
type Page[T any] struct {
	Items         []T
	NextPageToken string
}

// ListFunc fetches the page identified by pageToken. An empty token
// requests the first page.
type ListFunc[T any] func(ctx context.Context, pageToken string) (Page[T], error)

// CollectAll follows continuation tokens until exhaustion and returns the
// concatenation of all pages in order. Page size is provider-chosen and no
// snapshot isolation is guaranteed if the dataset mutates between calls.
func CollectAll[T any](ctx context.Context, list ListFunc[T]) ([]T, error) {
	var items []T
	token := ""
	for {
		page, err := list(ctx, token)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		if page.NextPageToken == "" {
			return items, nil
		}
		token = page.NextPageToken
	}
}
