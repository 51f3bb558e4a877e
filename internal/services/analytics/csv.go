package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Dataset is one parsed Open-Meteo CSV export: a two-line location preamble
// followed by hourly weather rows.
type Dataset struct {
	Latitude  float64
	Longitude float64
	Rows      []WeatherRow
}

// WeatherRow holds one hourly observation, already converted to core units
// (K, m/s, fraction).
type WeatherRow struct {
	Time        time.Time
	AirTempK    float64
	RelHumidity float64
	WindSpeed   float64
	Irradiance  float64
}

// column names of the export (units embedded, as Open-Meteo writes them)
const (
	colTime       = "time"
	colTempC      = "temperature_2m (°C)"
	colRelHumPct  = "relative_humidity_2m (%)"
	colWindKmh    = "wind_speed_10m (km/h)"
	colIrradiance = "terrestrial_radiation (W/m²)"
)

// LoadWeatherCSV parses the export: header+values preamble with lat/lon,
// a separator line, then the hourly table. Units are converted on the way in
// (°C -> K, km/h -> m/s, % -> fraction); the time column is a unix epoch.
func LoadWeatherCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // preamble e tabella hanno larghezze diverse

	metaHeader, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read preamble header: %w", err)
	}
	metaValues, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read preamble values: %w", err)
	}

	ds := &Dataset{}
	for i, name := range metaHeader {
		if i >= len(metaValues) {
			break
		}
		switch strings.TrimSpace(name) {
		case "latitude":
			ds.Latitude, _ = strconv.ParseFloat(strings.TrimSpace(metaValues[i]), 64)
		case "longitude":
			ds.Longitude, _ = strconv.ParseFloat(strings.TrimSpace(metaValues[i]), 64)
		}
	}

	// cerca l'header della tabella dati (dopo l'eventuale riga vuota)
	var header []string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return ds, nil // nessuna riga dati
		}
		if err != nil {
			return nil, fmt.Errorf("read data header: %w", err)
		}
		if len(rec) > 1 && strings.TrimSpace(rec[0]) == colTime {
			header = rec
			break
		}
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colTime, colTempC, colRelHumPct, colWindKmh, colIrradiance} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read data row: %w", err)
		}

		epoch, err := strconv.ParseInt(strings.TrimSpace(rec[idx[colTime]]), 10, 64)
		if err != nil {
			continue // riga malformata: salta, non interrompere il caricamento
		}
		row := WeatherRow{
			Time:        time.Unix(epoch, 0).UTC(),
			AirTempK:    field(rec, idx[colTempC]) + 273.15,
			RelHumidity: field(rec, idx[colRelHumPct]) / 100,
			WindSpeed:   field(rec, idx[colWindKmh]) * 1000 / 3600,
			Irradiance:  field(rec, idx[colIrradiance]),
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

func field(rec []string, i int) float64 {
	if i < 0 || i >= len(rec) {
		return 0
	}
	f, _ := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
	return f
}
