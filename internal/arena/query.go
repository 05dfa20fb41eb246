package arena

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultLimit is the page size used when a caller does not ask for one.
const DefaultLimit = 20

// ItemFilter narrows an item search. Free-text fields (Name, Number,
// Description) get wildcard decoration before they reach the wire;
// CategoryGUID matches exactly and is never decorated.
type ItemFilter struct {
	Name         string
	Number       string
	Description  string
	CategoryGUID string
}

// Page bounds a paginated collection fetch.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalized() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// request describes a single Arena API call before any transport concerns:
// method, resource path, and query parameters. Builders are pure so the
// filter and pagination policy is testable without a server.
type request struct {
	method string
	path   string
	query  url.Values
}

// wrapWildcard decorates a search value for partial matching. Values that
// already carry a "*" anywhere are passed through untouched so callers can
// express prefix or suffix searches themselves.
func wrapWildcard(v string) string {
	if v == "" {
		return ""
	}
	if strings.Contains(v, "*") {
		return v
	}
	return "*" + v + "*"
}

func searchItemsRequest(f ItemFilter, p Page) request {
	q := url.Values{}
	if v := wrapWildcard(f.Name); v != "" {
		q.Set("name", v)
	}
	if v := wrapWildcard(f.Number); v != "" {
		q.Set("number", v)
	}
	if v := wrapWildcard(f.Description); v != "" {
		q.Set("description", v)
	}
	if f.CategoryGUID != "" {
		q.Set("category.guid", f.CategoryGUID)
	}
	p = p.normalized()
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("offset", strconv.Itoa(p.Offset))
	return request{method: http.MethodGet, path: "/items", query: q}
}

func itemRequest(guid string, includeEmptyAttrs bool) request {
	q := url.Values{}
	if includeEmptyAttrs {
		q.Set("includeEmptyAdditionalAttributes", "true")
	}
	return request{method: http.MethodGet, path: "/items/" + url.PathEscape(guid), query: q}
}

func bomRequest(guid string, includeAttrs bool) request {
	q := url.Values{}
	if includeAttrs {
		q.Set("includeAdditionalAttributes", "true")
	}
	return request{method: http.MethodGet, path: "/items/" + url.PathEscape(guid) + "/bom", query: q}
}

func whereUsedRequest(guid string) request {
	return request{method: http.MethodGet, path: "/items/" + url.PathEscape(guid) + "/whereused"}
}

func revisionsRequest(guid string) request {
	return request{method: http.MethodGet, path: "/items/" + url.PathEscape(guid) + "/revisions"}
}

func filesRequest(guid string) request {
	return request{method: http.MethodGet, path: "/items/" + url.PathEscape(guid) + "/files"}
}

func sourcingRequest(guid string, p Page) request {
	p = p.normalized()
	q := url.Values{}
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("offset", strconv.Itoa(p.Offset))
	return request{method: http.MethodGet, path: "/items/" + url.PathEscape(guid) + "/sourcing", query: q}
}

func categoriesRequest(path string) request {
	q := url.Values{}
	if path != "" {
		q.Set("path", path)
	}
	return request{method: http.MethodGet, path: "/settings/items/categories", query: q}
}
