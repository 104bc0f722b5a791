package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound    = errors.New("unknown room type")
	ErrInvalidType = errors.New("invalid room type")
)

// RoomType is an immutable catalog entry. Name is the unique key.
type RoomType struct {
	Name          string `json:"name"          yaml:"name"`
	PricePerNight int    `json:"price"         yaml:"price"`
	TotalRooms    int    `json:"totalRooms"    yaml:"totalRooms"`
	Description   string `json:"description"   yaml:"description"`
	Image         string `json:"image"         yaml:"image"`
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	types  []RoomType
	byName map[string]int
}

func New(types ...RoomType) (*Catalog, error) {
	c := &Catalog{
		types:  make([]RoomType, 0, len(types)),
		byName: make(map[string]int, len(types)),
	}

	for _, rt := range types {
		if err := rt.validate(); err != nil {
			return nil, err
		}

		if _, ok := c.byName[rt.Name]; ok {
			return nil, fmt.Errorf("duplicate room type %q: %w", rt.Name, ErrInvalidType)
		}

		if rt.Image == "" {
			rt.Image = defaultImage(rt.Name)
		}

		c.byName[rt.Name] = len(c.types)
		c.types = append(c.types, rt)
	}

	if len(c.types) == 0 {
		return nil, fmt.Errorf("catalog is empty: %w", ErrInvalidType)
	}

	return c, nil
}

// Default returns the reference inventory.
func Default() *Catalog {
	c, err := New(
		RoomType{
			Name:          "Single Room",
			PricePerNight: 1000, //nolint:gomnd
			TotalRooms:    5,    //nolint:gomnd
			Description:   "Cozy room for solo travelers",
			Image:         "single.jpg",
		},
		RoomType{
			Name:          "Double Room",
			PricePerNight: 1800, //nolint:gomnd
			TotalRooms:    8,    //nolint:gomnd
			Description:   "Comfortable room for couples",
			Image:         "double.jpg",
		},
		RoomType{
			Name:          "Suite Room",
			PricePerNight: 3000, //nolint:gomnd
			TotalRooms:    3,    //nolint:gomnd
			Description:   "Luxurious suite with premium amenities",
			Image:         "suite.jpg",
		},
	)
	if err != nil {
		panic(err)
	}

	return c
}

// Load reads a YAML list of room types.
func Load(r io.Reader) (*Catalog, error) {
	var types []RoomType

	if err := yaml.NewDecoder(r).Decode(&types); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	return New(types...)
}

func (c *Catalog) Lookup(name string) (RoomType, error) {
	idx, ok := c.byName[name]
	if !ok {
		return RoomType{}, fmt.Errorf("room type %q: %w", name, ErrNotFound)
	}

	return c.types[idx], nil
}

func (c *Catalog) PriceOf(name string) (int, error) {
	rt, err := c.Lookup(name)
	if err != nil {
		return 0, err
	}

	return rt.PricePerNight, nil
}

func (c *Catalog) CapacityOf(name string) (int, error) {
	rt, err := c.Lookup(name)
	if err != nil {
		return 0, err
	}

	return rt.TotalRooms, nil
}

// ListTypes returns the entries in declaration order.
func (c *Catalog) ListTypes() []RoomType {
	out := make([]RoomType, len(c.types))
	copy(out, c.types)

	return out
}

func (rt RoomType) validate() error {
	if strings.TrimSpace(rt.Name) == "" {
		return fmt.Errorf("room type name is empty: %w", ErrInvalidType)
	}

	if rt.PricePerNight <= 0 {
		return fmt.Errorf("room type %q: price must be positive: %w", rt.Name, ErrInvalidType)
	}

	if rt.TotalRooms <= 0 {
		return fmt.Errorf("room type %q: room count must be positive: %w", rt.Name, ErrInvalidType)
	}

	return nil
}

func defaultImage(name string) string {
	first, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(name)), " ")

	return first + ".jpg"
}
