package dataset

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// clusteredAccident is the on-disk shape of a record after the
// clustering stage appended its label column.
type clusteredAccident struct {
	model.Accident
	Cluster int `csv:"Cluster"`
}

// RawReader streams raw (uncleaned) accident rows from a source CSV.
type RawReader struct {
	f   *os.File
	dec *csvutil.Decoder
}

// OpenRaw opens a source export for streaming decode. The file may be
// multiple gigabytes; rows are decoded one at a time.
func OpenRaw(path string) (*RawReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open %s", path)
	}

	r := csv.NewReader(f)
	r.ReuseRecord = true

	dec, err := csvutil.NewDecoder(r)
	if err != nil {
		f.Close()
		return nil, eris.Wrap(err, "dataset: read header")
	}

	return &RawReader{f: f, dec: dec}, nil
}

// Next decodes the next row. It returns io.EOF after the last row.
func (r *RawReader) Next() (*model.RawAccident, error) {
	var rec model.RawAccident
	if err := r.dec.Decode(&rec); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, eris.Wrap(err, "dataset: decode row")
	}
	return &rec, nil
}

// Header returns the column names of the open file.
func (r *RawReader) Header() []string {
	return r.dec.Header()
}

func (r *RawReader) Close() error {
	return r.f.Close()
}

// ReadAccidents loads a cleaned or clustered CSV into memory. The
// second return reports whether the file carried a Cluster column;
// when it did not, every record's Cluster is -1.
func ReadAccidents(path string) ([]model.Accident, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, eris.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	dec, err := csvutil.NewDecoder(csv.NewReader(f))
	if err != nil {
		return nil, false, eris.Wrap(err, "dataset: read header")
	}

	hasCluster := false
	for _, col := range dec.Header() {
		if col == "Cluster" {
			hasCluster = true
			break
		}
	}

	var records []model.Accident
	for {
		var row clusteredAccident
		if err := dec.Decode(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, false, eris.Wrap(err, "dataset: decode row")
		}
		rec := row.Accident
		if hasCluster {
			rec.Cluster = row.Cluster
		} else {
			rec.Cluster = -1
		}
		records = append(records, rec)
	}

	return records, hasCluster, nil
}

// ReadHotspots loads a hotspot statistics CSV written by WriteHotspots.
func ReadHotspots(path string) ([]model.Hotspot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	dec, err := csvutil.NewDecoder(csv.NewReader(f))
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read header")
	}

	var hotspots []model.Hotspot
	for {
		var h model.Hotspot
		if err := dec.Decode(&h); err != nil {
			if err == io.EOF {
				break
			}
			return nil, eris.Wrap(err, "dataset: decode hotspot")
		}
		hotspots = append(hotspots, h)
	}
	return hotspots, nil
}
