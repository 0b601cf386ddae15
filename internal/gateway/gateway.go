// Package gateway provides typed clients for the remote data service
// resources. Each resource gets a small interface so services can be unit
// tested against in-memory fakes; the HTTP implementations share the
// infra.DataServiceClient verbs.
//
// Wire conventions: list endpoints take pageIndex/pageSize query params and
// answer {"data": [...], "details": {"count": n}}; dates are 8-digit Jalali
// keys; amounts are plain integers.
package gateway

import (
	"net/url"
	"strconv"
)

// listEnvelope is the standard paginated list response of the data service.
type listEnvelope[T any] struct {
	Data    []T `json:"data"`
	Details struct {
		Count int64 `json:"count"`
	} `json:"details"`
}

// Page is the pagination slice requested from a list endpoint.
type Page struct {
	Index int
	Size  int
}

func (p Page) values() url.Values {
	size := p.Size
	if size <= 0 {
		size = 20
	}
	v := url.Values{}
	v.Set("pageIndex", strconv.Itoa(p.Index))
	v.Set("pageSize", strconv.Itoa(size))
	return v
}
