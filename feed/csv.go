package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/optrack/optrack/ledger"
)

// csvColumns is the expected header:
// time,symbol,price,delta,gamma,theta,vega,rho,iv
// The Greek columns may be empty.
var csvColumns = []string{"time", "symbol", "price", "delta", "gamma", "theta", "vega", "rho", "iv"}

// CSVFeed reads ticks from a CSV file, one row per tick, ordered by time.
type CSVFeed struct {
	f   *os.File
	r   *csv.Reader
	row int
}

func OpenCSV(path string) (*CSVFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvColumns)

	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read tick header: %w", err)
	}
	for i, want := range csvColumns {
		if header[i] != want {
			f.Close()
			return nil, fmt.Errorf("tick header column %d: got %q want %q", i, header[i], want)
		}
	}

	return &CSVFeed{f: f, r: r, row: 1}, nil
}

func (c *CSVFeed) Next() (Tick, bool, error) {
	rec, err := c.r.Read()
	if err == io.EOF {
		return Tick{}, false, nil
	}
	if err != nil {
		return Tick{}, false, err
	}
	c.row++

	ts, err := time.Parse(time.RFC3339, rec[0])
	if err != nil {
		return Tick{}, false, fmt.Errorf("row %d: bad time %q: %w", c.row, rec[0], err)
	}
	price, err := strconv.ParseFloat(rec[2], 64)
	if err != nil {
		return Tick{}, false, fmt.Errorf("row %d: bad price %q: %w", c.row, rec[2], err)
	}

	g := ledger.Greeks{}
	for i, dst := range []*float64{&g.Delta, &g.Gamma, &g.Theta, &g.Vega, &g.Rho, &g.IV} {
		field := rec[3+i]
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Tick{}, false, fmt.Errorf("row %d: bad %s %q: %w", c.row, csvColumns[3+i], field, err)
		}
		*dst = v
	}

	return Tick{
		Symbol: rec[1],
		Price:  price,
		Greeks: g,
		Time:   ts,
	}, true, nil
}

func (c *CSVFeed) Close() error {
	return c.f.Close()
}
