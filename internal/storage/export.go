package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
)

// WriteCSV writes one row per vertex in buffer order.
func WriteCSV(w io.Writer, snap *Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(vertexHeader); err != nil {
		return err
	}

	trail := max(snap.Metadata.Trail, 1)
	f := func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
	for v := 0; v < snap.Vertices(); v++ {
		row := []string{
			strconv.Itoa(v / trail),
			strconv.Itoa(v % trail),
			f(snap.Positions[v*3]), f(snap.Positions[v*3+1]), f(snap.Positions[v*3+2]),
			f(snap.Colors[v*3]), f(snap.Colors[v*3+1]), f(snap.Colors[v*3+2]),
			f(snap.Alpha[v]),
			f(snap.Size[v]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportJSON writes snap as indented JSON to path.
func ExportJSON(path string, snap *Snapshot) error {
	return exportFile(path, snap, WriteJSON)
}

func WriteJSON(w io.Writer, snap *Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}

// ExportCSV writes snap's vertex rows to path.
func ExportCSV(path string, snap *Snapshot) error {
	return exportFile(path, snap, WriteCSV)
}

func exportFile(path string, snap *Snapshot, write func(io.Writer, *Snapshot) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file, snap); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
