package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	stacVersion   = "1.0.0"
	catalogFile   = "catalog.json"
	jsonMediaType = "application/json"
)

// Link is an outbound reference attached to a catalog node.
type Link struct {
	Rel       string `json:"rel"`
	Href      string `json:"href"`
	Title     string `json:"title,omitempty"`
	MediaType string `json:"type,omitempty"`
}

// Catalog is one node in a caller-owned catalog tree. There is no package
// level tree; callers construct a root and pass it through assembly.
type Catalog struct {
	ID          string
	Title       string
	Description string

	links    []Link
	children []*Catalog
	items    []*Item
}

// New constructs a catalog node.
func New(id, title, description string) *Catalog {
	return &Catalog{ID: id, Title: title, Description: description}
}

// AddLink attaches an extra link, such as a related website.
func (c *Catalog) AddLink(link Link) {
	c.links = append(c.links, link)
}

// AddChild nests a sub-catalog under this node.
func (c *Catalog) AddChild(child *Catalog) {
	c.children = append(c.children, child)
}

// Child finds a direct sub-catalog by ID.
func (c *Catalog) Child(id string) (*Catalog, bool) {
	for _, child := range c.children {
		if child.ID == id {
			return child, true
		}
	}
	return nil, false
}

// AddItem attaches an item to this node.
func (c *Catalog) AddItem(item *Item) {
	c.items = append(c.items, item)
}

// ItemCount reports the number of items in this node and all descendants.
func (c *Catalog) ItemCount() int {
	count := len(c.items)
	for _, child := range c.children {
		count += child.ItemCount()
	}
	return count
}

// Item is one catalog entry holding assets keyed by their descriptor key.
type Item struct {
	ID       string
	Datetime string
	BBox     []float64
	Assets   map[string]Asset
}

// NewItem constructs an empty item stamped with the given datetime.
func NewItem(id, datetime string) *Item {
	return &Item{ID: id, Datetime: datetime, Assets: map[string]Asset{}}
}

// AddAsset inserts the asset under its key. Duplicate keys overwrite:
// last write wins.
func (i *Item) AddAsset(a Asset) {
	i.Assets[a.Key] = a
}

// AddAssets inserts a batch of assets in order.
func (i *Item) AddAssets(assets []Asset) {
	for _, a := range assets {
		i.AddAsset(a)
	}
}

type catalogJSON struct {
	Type        string `json:"type"`
	StacVersion string `json:"stac_version"`
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
	Links       []Link `json:"links"`
}

type itemJSON struct {
	Type        string           `json:"type"`
	StacVersion string           `json:"stac_version"`
	ID          string           `json:"id"`
	BBox        []float64        `json:"bbox,omitempty"`
	Properties  map[string]any   `json:"properties"`
	Assets      map[string]Asset `json:"assets"`
	Links       []Link           `json:"links"`
}

// Save writes the tree as a self-contained catalog: one catalog.json per
// node, each child in its own directory, items alongside their parent, and
// all links relative.
func (c *Catalog) Save(dir string) error {
	return c.write(dir, 0)
}

func (c *Catalog) write(dir string, depth int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir %q: %w", dir, err)
	}

	links := []Link{rootLink(depth)}
	if depth > 0 {
		links = append(links, Link{Rel: "parent", Href: "../" + catalogFile, MediaType: jsonMediaType})
	}
	for _, child := range c.children {
		links = append(links, Link{Rel: "child", Href: "./" + child.ID + "/" + catalogFile, MediaType: jsonMediaType})
	}
	for _, item := range c.items {
		links = append(links, Link{Rel: "item", Href: "./" + item.ID + "/" + item.ID + ".json", MediaType: "application/geo+json"})
	}
	links = append(links, c.links...)

	node := catalogJSON{
		Type:        "Catalog",
		StacVersion: stacVersion,
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Links:       links,
	}
	if err := writeJSON(filepath.Join(dir, catalogFile), node); err != nil {
		return err
	}

	for _, item := range c.items {
		if err := item.write(filepath.Join(dir, item.ID), depth+1); err != nil {
			return err
		}
	}
	for _, child := range c.children {
		if err := child.write(filepath.Join(dir, child.ID), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (i *Item) write(dir string, depth int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create item dir %q: %w", dir, err)
	}

	properties := map[string]any{"datetime": nil}
	if i.Datetime != "" {
		properties["datetime"] = i.Datetime
	}

	node := itemJSON{
		Type:        "Feature",
		StacVersion: stacVersion,
		ID:          i.ID,
		BBox:        i.BBox,
		Properties:  properties,
		Assets:      i.Assets,
		Links: []Link{
			rootLink(depth),
			{Rel: "parent", Href: "../" + catalogFile, MediaType: jsonMediaType},
		},
	}
	return writeJSON(filepath.Join(dir, i.ID+".json"), node)
}

func rootLink(depth int) Link {
	return Link{Rel: "root", Href: strings.Repeat("../", depth) + catalogFile, MediaType: jsonMediaType}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}
