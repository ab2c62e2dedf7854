package listing

// View holds the state of a list screen: the active filters, the sort and the
// current page. Changing a filter sends the user back to the first page while
// changing the sort keeps the page.
type View[T any] struct {
	filters  map[string]Predicate[T]
	order    []string
	sortKey  string
	cmp      Comparator[T]
	dir      Direction
	page     int
	pageSize int
}

func NewView[T any]() *View[T] {
	return &View[T]{
		filters:  make(map[string]Predicate[T]),
		dir:      Asc,
		page:     1,
		pageSize: DefaultPageSize,
	}
}

// SetFilter replaces the filter registered under name. A nil predicate clears it.
func (v *View[T]) SetFilter(name string, pred Predicate[T]) {
	if _, ok := v.filters[name]; !ok {
		v.order = append(v.order, name)
	}
	v.filters[name] = pred
	v.page = 1
}

func (v *View[T]) SetSort(key string, cmp Comparator[T], dir Direction) {
	v.sortKey = key
	v.cmp = cmp
	v.dir = dir
}

func (v *View[T]) SetPage(page int) {
	v.page = max(page, 1)
}

func (v *View[T]) Page() int {
	return v.page
}

func (v *View[T]) SortKey() string {
	return v.sortKey
}

func (v *View[T]) Direction() Direction {
	return v.dir
}

func (v *View[T]) predicates() []Predicate[T] {
	preds := make([]Predicate[T], 0, len(v.order))
	for _, name := range v.order {
		preds = append(preds, v.filters[name])
	}
	return preds
}

// Apply runs the pipeline over items with the current state.
func (v *View[T]) Apply(items []T) Page[T] {
	return Apply(items, v.predicates(), v.cmp, v.dir, v.page, v.pageSize)
}
