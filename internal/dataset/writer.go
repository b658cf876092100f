package dataset

import (
	"encoding/csv"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// WriteAccidents serializes records to path. When withCluster is set,
// the Cluster column is appended after the base record columns.
func WriteAccidents(path string, records []model.Accident, withCluster bool) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "dataset: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)

	// csvutil only emits the header on the first Encode; an empty
	// record set still needs one so readers see the schema.
	if len(records) == 0 {
		var v interface{} = model.Accident{}
		if withCluster {
			v = clusteredAccident{}
		}
		header, err := csvutil.Header(v, "csv")
		if err != nil {
			return eris.Wrap(err, "dataset: build header")
		}
		if err := w.Write(header); err != nil {
			return eris.Wrap(err, "dataset: write header")
		}
	}

	for i := range records {
		var encodeErr error
		if withCluster {
			encodeErr = enc.Encode(clusteredAccident{
				Accident: records[i],
				Cluster:  records[i].Cluster,
			})
		} else {
			encodeErr = enc.Encode(records[i])
		}
		if encodeErr != nil {
			return eris.Wrap(encodeErr, "dataset: encode row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "dataset: flush")
	}
	return f.Close()
}

// WriteHotspots serializes hotspot statistics to path, in the order
// given.
func WriteHotspots(path string, hotspots []model.Hotspot) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "dataset: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)
	for i := range hotspots {
		if err := enc.Encode(hotspots[i]); err != nil {
			return eris.Wrap(err, "dataset: encode hotspot")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "dataset: flush")
	}
	return f.Close()
}
