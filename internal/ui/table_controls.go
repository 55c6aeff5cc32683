package ui

type tableController interface {
	NextColumn()
	PrevColumn()
	JumpToColumn(number int) bool
	ToggleSortActiveColumn() string
	ClearFilter() bool
	TableMeta() string
}

var _ tableController = (*SheetModel)(nil)
