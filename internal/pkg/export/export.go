package export

// Table is a generic row-oriented payload shared by the CSV and XLSX
// writers. The first dimension is rows, the second is columns.
type Table struct {
	Headers []string
	Rows    [][]string
}
