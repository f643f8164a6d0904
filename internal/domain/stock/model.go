package stock

// StockRecord represents one trading day of OHLCV data
// Maps to the stocks table
type StockRecord struct {
	Date     string  `json:"date" db:"date"`           // YYYY-MM-DD, unique
	Open     float64 `json:"open" db:"open"`           // opening price
	High     float64 `json:"high" db:"high"`           // intraday high
	Low      float64 `json:"low" db:"low"`             // intraday low
	Close    float64 `json:"close" db:"close"`         // closing price
	AdjClose float64 `json:"adj_close" db:"adj_close"` // split/dividend adjusted close
	Volume   int64   `json:"volume" db:"volume"`       // shares traded
}

// TableName is the single table the loader writes and the API reads
const TableName = "stocks"

// DateLayout is the ISO calendar date format stored in the date column
const DateLayout = "2006-01-02"

// Columns lists the table columns in insert/select order
var Columns = []string{"date", "open", "high", "low", "close", "adj_close", "volume"}
