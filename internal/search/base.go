package search

// BaseQuery scopes a list view to one author's publications. Views keep
// it by pointer: a new pointer means "scope changed, fetch again".
type BaseQuery struct {
	Author []string
}

// AggregationsQuery scopes the facet counts shown next to a list.
type AggregationsQuery struct {
	AuthorRecid string
}

// BaseQueryMemo hands out the same BaseQuery and AggregationsQuery
// pointers for as long as the facet name stays the same.
type BaseQueryMemo struct {
	facet string
	base  *BaseQuery
	aggs  *AggregationsQuery
}

func (m *BaseQueryMemo) For(facet string) (*BaseQuery, *AggregationsQuery) {
	if m.base == nil || m.facet != facet {
		m.facet = facet
		m.base = &BaseQuery{Author: []string{facet}}
		m.aggs = &AggregationsQuery{AuthorRecid: facet}
	}
	return m.base, m.aggs
}
