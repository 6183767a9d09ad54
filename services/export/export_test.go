package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hsakai921/clinicharvester/internal/extractor"
	"hsakai921/clinicharvester/services/store"

	"github.com/stretchr/testify/assert"
)

func TestWriteSnapshots(t *testing.T) {
	dir := t.TempDir()

	rating := 4.2
	reviews := 87
	cards := []extractor.Card{
		{Name: "渋谷美容クリニック", ClinicURL: "https://x/clinics/0123", Rating: &rating},
	}
	rows := []store.ClinicRow{
		{
			ClinicID:  "0123",
			Name:      "渋谷美容クリニック",
			Rating:    &rating,
			Reviews:   &reviews,
			ClinicURL: "https://x/clinics/0123",
			SourceURL: "https://x/list/0001/",
			ScrapedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			Status:    "ok",
		},
	}

	err := WriteSnapshots(dir, cards, rows)
	assert.NoError(t, err)

	jsonData, err := os.ReadFile(filepath.Join(dir, "cards.json"))
	assert.NoError(t, err)
	var decoded []extractor.Card
	assert.NoError(t, json.Unmarshal(jsonData, &decoded))
	assert.Len(t, decoded, 1)
	assert.Equal(t, "渋谷美容クリニック", decoded[0].Name)

	csvData, err := os.ReadFile(filepath.Join(dir, "latest.csv"))
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "timestamp_utc,source,url,title,h1,status,notes", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2025-06-01T12:00:00Z,http,"))
	assert.Contains(t, lines[1], "渋谷美容クリニック,渋谷美容クリニック,ok")
	assert.Contains(t, lines[1], "rating=4.2")
	assert.Contains(t, lines[1], "reviews=87")
}
