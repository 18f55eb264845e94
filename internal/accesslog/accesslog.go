// Package accesslog extracts client IP addresses from JSON-lines access
// logs, one JSON object per line with a "remote_addr" field.
package accesslog

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
)

type entry struct {
	RemoteAddr string `json:"remote_addr"`
}

// ReadIPs scans r line by line and returns the remote_addr of every
// well-formed record. Malformed lines and records without the field are
// skipped rather than failing the scan.
func ReadIPs(r io.Reader) ([]string, error) {
	var ips []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var e entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			continue
		}
		if e.RemoteAddr != "" {
			ips = append(ips, e.RemoteAddr)
		}
	}
	return ips, sc.Err()
}

// LoadIPs reads IP addresses from the access log at path.
func LoadIPs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadIPs(f)
}
