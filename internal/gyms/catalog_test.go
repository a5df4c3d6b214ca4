package gyms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	all := Default().All()
	require.Len(t, all, 4)
	assert.Equal(t, "Eppley Recreation Center", all[0].Name)
	assert.Equal(t, [2]float64{38.993431, -76.945224}, all[0].Location)
	assert.Equal(t, "6:00 AM - 12:00 AM", all[0].Hours)
	assert.Equal(t, []string{"Weight Room", "Indoor Pool", "Climbing Wall", "Basketball Courts"}, all[0].Facilities)
	assert.Equal(t, "Reckord Armory", all[3].Name)
}

func TestAllReturnsCopies(t *testing.T) {
	c := Default()
	all := c.All()
	all[0].Facilities[0] = "Sauna"
	assert.Equal(t, "Weight Room", c.All()[0].Facilities[0])
}

func TestFindAndMatch(t *testing.T) {
	c := Default()

	g, ok := c.Find("  ritchie coliseum ")
	require.True(t, ok)
	assert.Equal(t, "Ritchie Coliseum", g.Name)

	_, ok = c.Find("Ritchie")
	assert.False(t, ok)

	g, ok = c.Match("log workout at reckord armory please")
	require.True(t, ok)
	assert.Equal(t, "Reckord Armory", g.Name)

	_, ok = c.Match("log workout")
	assert.False(t, ok)
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gyms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- name: Home Gym
  location: [1, 2]
  hours: always
  facilities: [Rack]
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.All(), 1)
	assert.Equal(t, "Home Gym", c.All()[0].Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":     "[]",
		"no name":   "- hours: x",
		"duplicate": "- name: A\n- name: a",
		"not yaml":  "{{",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}
