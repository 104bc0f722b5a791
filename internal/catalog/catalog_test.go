package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	types := c.ListTypes()
	require.Len(t, types, 3)
	assert.Equal(t, "Single Room", types[0].Name)
	assert.Equal(t, "Double Room", types[1].Name)
	assert.Equal(t, "Suite Room", types[2].Name)

	price, err := c.PriceOf("Double Room")
	require.NoError(t, err)
	assert.Equal(t, 1800, price)

	capacity, err := c.CapacityOf("Suite Room")
	require.NoError(t, err)
	assert.Equal(t, 3, capacity)
}

func TestCatalog_UnknownType(t *testing.T) {
	c := Default()

	_, err := c.PriceOf("Penthouse")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.CapacityOf("Penthouse")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Lookup("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_ListTypesIsCopy(t *testing.T) {
	c := Default()

	types := c.ListTypes()
	types[0].PricePerNight = 1

	price, err := c.PriceOf("Single Room")
	require.NoError(t, err)
	assert.Equal(t, 1000, price)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name  string
		types []RoomType
	}{
		{name: "empty", types: nil},
		{name: "blank name", types: []RoomType{{Name: " ", PricePerNight: 1, TotalRooms: 1}}},
		{name: "zero price", types: []RoomType{{Name: "A", PricePerNight: 0, TotalRooms: 1}}},
		{name: "negative rooms", types: []RoomType{{Name: "A", PricePerNight: 1, TotalRooms: -1}}},
		{
			name: "duplicate",
			types: []RoomType{
				{Name: "A", PricePerNight: 1, TotalRooms: 1},
				{Name: "A", PricePerNight: 2, TotalRooms: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.types...)
			assert.ErrorIs(t, err, ErrInvalidType)
		})
	}
}

func TestNew_DefaultImage(t *testing.T) {
	c, err := New(RoomType{Name: "Family Room", PricePerNight: 2500, TotalRooms: 2})
	require.NoError(t, err)

	rt, err := c.Lookup("Family Room")
	require.NoError(t, err)
	assert.Equal(t, "family.jpg", rt.Image)
}

func TestLoad(t *testing.T) {
	src := `
- name: Single Room
  price: 1000
  totalRooms: 1
  description: Cozy
- name: Loft
  price: 4200
  totalRooms: 2
  image: loft.png
`

	c, err := Load(strings.NewReader(src))
	require.NoError(t, err)

	types := c.ListTypes()
	require.Len(t, types, 2)
	assert.Equal(t, RoomType{Name: "Single Room", PricePerNight: 1000, TotalRooms: 1, Description: "Cozy", Image: "single.jpg"}, types[0])
	assert.Equal(t, "loft.png", types[1].Image)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(strings.NewReader("- name: A\n  price: 0\n  totalRooms: 1\n"))
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = Load(strings.NewReader("not: [a list"))
	assert.Error(t, err)
}
