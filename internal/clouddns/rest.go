/*
 * REST client - HTTP implementation of the API client.
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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"clouddns-client/internal/clouddns/model"
	"clouddns-client/internal/metrics"

	log "github.com/sirupsen/logrus"
)

const (
	actGetProject   = "get_project"
	actGetZones     = "get_zones"
	actGetZone      = "get_zone"
	actCreateZone   = "create_zone"
	actDeleteZone   = "delete_zone"
	actGetRRSets    = "get_rrsets"
	actCreateChange = "create_change"
	actGetChange    = "get_change"
	actGetChanges   = "get_changes"
)

// restClient implements apiClient against the provider's REST endpoint.
type restClient struct {
	endpoint string
	project  string
	token    string
	client   *http.Client
}

// newRESTClient creates a REST client for the given project from the
// configuration.
func newRESTClient(config *Configuration, project string) *restClient {
	return &restClient{
		endpoint: strings.TrimRight(config.APIEndpointURL, "/"),
		project:  project,
		token:    config.APIToken,
		client: &http.Client{
			Timeout: config.GetRequestTimeout(),
		},
	}
}

// Wire shapes. Times travel as RFC 3339 strings.
type zoneJSON struct {
	Name         string   `json:"name"`
	DNSName      string   `json:"dnsName"`
	Description  string   `json:"description,omitempty"`
	CreationTime string   `json:"creationTime,omitempty"`
	NameServers  []string `json:"nameServers,omitempty"`
}

type rrsetJSON struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	TTL     int      `json:"ttl"`
	Rrdatas []string `json:"rrdatas"`
}

type changeJSON struct {
	ID        string      `json:"id,omitempty"`
	Status    string      `json:"status,omitempty"`
	StartTime string      `json:"startTime,omitempty"`
	Additions []rrsetJSON `json:"additions,omitempty"`
	Deletions []rrsetJSON `json:"deletions,omitempty"`
}

type projectJSON struct {
	ID    string         `json:"id"`
	Quota map[string]int `json:"quota"`
}

type zoneListJSON struct {
	ManagedZones  []zoneJSON `json:"managedZones"`
	NextPageToken string     `json:"nextPageToken"`
}

type rrsetListJSON struct {
	Rrsets        []rrsetJSON `json:"rrsets"`
	NextPageToken string      `json:"nextPageToken"`
}

type changeListJSON struct {
	Changes       []changeJSON `json:"changes"`
	NextPageToken string       `json:"nextPageToken"`
}

// apiErrorJSON is the provider's error envelope.
type apiErrorJSON struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// parseTime converts a wire timestamp, tolerating an absent value.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		log.Warnf("Cannot parse timestamp %q from the API: %v", s, err)
		return time.Time{}
	}
	return t
}

func toModelZone(z zoneJSON) model.ManagedZone {
	return model.ManagedZone{
		Name:        z.Name,
		DNSName:     z.DNSName,
		Description: z.Description,
		Created:     parseTime(z.CreationTime),
		NameServers: z.NameServers,
	}
}

func fromModelZone(z model.ManagedZone) zoneJSON {
	return zoneJSON{
		Name:        z.Name,
		DNSName:     z.DNSName,
		Description: z.Description,
	}
}

func toModelRRSet(r rrsetJSON) model.ResourceRecordSet {
	return model.ResourceRecordSet(r)
}

func fromModelRRSet(r model.ResourceRecordSet) rrsetJSON {
	return rrsetJSON(r)
}

func toModelRRSets(rs []rrsetJSON) []model.ResourceRecordSet {
	out := make([]model.ResourceRecordSet, len(rs))
	for i, r := range rs {
		out[i] = toModelRRSet(r)
	}
	return out
}

func fromModelRRSets(rs []model.ResourceRecordSet) []rrsetJSON {
	out := make([]rrsetJSON, len(rs))
	for i, r := range rs {
		out[i] = fromModelRRSet(r)
	}
	return out
}

func toModelChange(c changeJSON) model.Change {
	return model.Change{
		ID:        c.ID,
		Status:    model.ChangeStatus(c.Status),
		StartTime: parseTime(c.StartTime),
		Additions: toModelRRSets(c.Additions),
		Deletions: toModelRRSets(c.Deletions),
	}
}

func fromModelChange(c model.Change) changeJSON {
	return changeJSON{
		Additions: fromModelRRSets(c.Additions),
		Deletions: fromModelRRSets(c.Deletions),
	}
}

// quotaReasons are the error reasons that signal an exceeded project limit.
var quotaReasons = map[string]bool{
	"quotaExceeded":     true,
	"limitExceeded":     true,
	"rateLimitExceeded": true,
}

// classify maps a provider failure to an error kind.
func classify(op string, status int, body []byte) error {
	var envelope apiErrorJSON
	message := http.StatusText(status)
	reason := ""
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
		if len(envelope.Error.Errors) > 0 {
			reason = envelope.Error.Errors[0].Reason
		}
	}

	var kind Kind
	switch {
	case status == http.StatusUnauthorized:
		kind = KindAuth
	case status == http.StatusForbidden && quotaReasons[reason]:
		kind = KindQuotaExceeded
	case status == http.StatusForbidden:
		kind = KindAuth
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusConflict:
		kind = KindConflict
	case status == http.StatusTooManyRequests:
		kind = KindQuotaExceeded
	case status >= 400 && status < 500:
		kind = KindValidation
	default:
		return fmt.Errorf("%s: provider returned status %d: %s", op, status, message)
	}

	return &Error{
		Kind:       kind,
		Op:         op,
		Message:    message,
		StatusCode: status,
	}
}

// do runs one request against the API and decodes the response into out
// when out is not nil. The call is accounted in the metrics under the given
// action.
func (c *restClient) do(ctx context.Context, action, method, path string, query url.Values, body, out any) error {
	m := metrics.GetInstance()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: cannot marshal request body: %w", action, err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%s: cannot build request: %w", action, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.WithFields(log.Fields{
		"method": method,
		"url":    u,
	}).Debug("Calling the DNS API")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		m.IncFailedAPICallsTotal(action)
		return fmt.Errorf("%s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		m.IncFailedAPICallsTotal(action)
		data, _ := io.ReadAll(resp.Body)
		return classify(action, resp.StatusCode, data)
	}

	delay := time.Since(start)
	m.IncSuccessfulAPICallsTotal(action)
	m.AddAPIDelayHist(action, delay.Milliseconds())

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: cannot decode response: %w", action, err)
	}
	return nil
}

// projectPath returns the base path for the configured project.
func (c *restClient) projectPath() string {
	return "/projects/" + url.PathEscape(c.project)
}

// zonePath returns the path of a managed zone.
func (c *restClient) zonePath(name string) string {
	return c.projectPath() + "/managedZones/" + url.PathEscape(name)
}

// GetProject returns the project with its quota snapshot.
func (c *restClient) GetProject(ctx context.Context) (*model.Project, error) {
	var out projectJSON
	if err := c.do(ctx, actGetProject, http.MethodGet, c.projectPath(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &model.Project{ID: out.ID, Quota: out.Quota}, nil
}

// GetZones returns one page of managed zones.
func (c *restClient) GetZones(ctx context.Context, opts model.ZoneListOpts) ([]model.ManagedZone, string, error) {
	query := url.Values{}
	if opts.PageToken != "" {
		query.Set("pageToken", opts.PageToken)
	}
	var out zoneListJSON
	path := c.projectPath() + "/managedZones"
	if err := c.do(ctx, actGetZones, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, "", err
	}
	zones := make([]model.ManagedZone, len(out.ManagedZones))
	for i, z := range out.ManagedZones {
		zones[i] = toModelZone(z)
	}
	return zones, out.NextPageToken, nil
}

// GetZone returns a single managed zone.
func (c *restClient) GetZone(ctx context.Context, name string) (*model.ManagedZone, error) {
	var out zoneJSON
	if err := c.do(ctx, actGetZone, http.MethodGet, c.zonePath(name), nil, nil, &out); err != nil {
		return nil, err
	}
	zone := toModelZone(out)
	return &zone, nil
}

// CreateZone creates a managed zone.
func (c *restClient) CreateZone(ctx context.Context, zone model.ManagedZone) (*model.ManagedZone, error) {
	var out zoneJSON
	path := c.projectPath() + "/managedZones"
	if err := c.do(ctx, actCreateZone, http.MethodPost, path, nil, fromModelZone(zone), &out); err != nil {
		return nil, err
	}
	created := toModelZone(out)
	return &created, nil
}

// DeleteZone deletes a managed zone.
func (c *restClient) DeleteZone(ctx context.Context, name string) error {
	return c.do(ctx, actDeleteZone, http.MethodDelete, c.zonePath(name), nil, nil, nil)
}

// GetRecordSets returns one page of record sets for a given zone.
func (c *restClient) GetRecordSets(ctx context.Context, opts model.RecordSetListOpts) ([]model.ResourceRecordSet, string, error) {
	query := url.Values{}
	if opts.PageToken != "" {
		query.Set("pageToken", opts.PageToken)
	}
	if opts.Name != "" {
		query.Set("name", opts.Name)
	}
	if opts.Type != "" {
		query.Set("type", opts.Type)
	}
	var out rrsetListJSON
	path := c.zonePath(opts.ZoneName) + "/rrsets"
	if err := c.do(ctx, actGetRRSets, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, "", err
	}
	return toModelRRSets(out.Rrsets), out.NextPageToken, nil
}

// CreateChange submits a change request to a zone.
func (c *restClient) CreateChange(ctx context.Context, zoneName string, change model.Change) (*model.Change, error) {
	var out changeJSON
	path := c.zonePath(zoneName) + "/changes"
	if err := c.do(ctx, actCreateChange, http.MethodPost, path, nil, fromModelChange(change), &out); err != nil {
		return nil, err
	}
	created := toModelChange(out)
	return &created, nil
}

// GetChange returns a single change request.
func (c *restClient) GetChange(ctx context.Context, zoneName, changeID string) (*model.Change, error) {
	var out changeJSON
	path := c.zonePath(zoneName) + "/changes/" + url.PathEscape(changeID)
	if err := c.do(ctx, actGetChange, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	change := toModelChange(out)
	return &change, nil
}

// GetChanges returns one page of the change history for a zone.
func (c *restClient) GetChanges(ctx context.Context, opts model.ChangeListOpts) ([]model.Change, string, error) {
	query := url.Values{}
	query.Set("sortOrder", "descending")
	if opts.PageToken != "" {
		query.Set("pageToken", opts.PageToken)
	}
	var out changeListJSON
	path := c.zonePath(opts.ZoneName) + "/changes"
	if err := c.do(ctx, actGetChanges, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, "", err
	}
	changes := make([]model.Change, len(out.Changes))
	for i, ch := range out.Changes {
		changes[i] = toModelChange(ch)
	}
	return changes, out.NextPageToken, nil
}
