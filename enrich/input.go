package enrich

import (
	"encoding/csv"
	"os"
	"strings"
)

// ReadURLList reads community URLs from a delimited text file, one logical
// entry per row. The first field of each row is taken as the URL; trailing
// annotation text after a separator (notes like "keep an eye - not free")
// is discarded. Empty rows are skipped.
func ReadURLList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		url := CleanURL(row[0])
		if url != "" {
			urls = append(urls, url)
		}
	}
	return urls, nil
}

// CleanURL canonicalizes a raw URL entry: whitespace is trimmed, a
// trailing comma removed, and anything after the first comma discarded.
func CleanURL(raw string) string {
	url := strings.TrimSpace(raw)
	url = strings.TrimSuffix(url, ",")
	if i := strings.IndexByte(url, ','); i >= 0 {
		url = url[:i]
	}
	return strings.TrimSpace(url)
}
