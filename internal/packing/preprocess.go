package packing

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Item is a catalog item as supplied by the caller, in centimeters.
type Item struct {
	Name     string   `json:"name" example:"Plush Bear"`
	Names    []string `json:"names,omitempty"`
	Category string   `json:"category,omitempty" example:"toys"`
	LengthCm float64  `json:"length_cm" example:"20"`
	WidthCm  float64  `json:"width_cm" example:"15"`
	HeightCm float64  `json:"height_cm" example:"10"`
	WeightG  int      `json:"weight_g" example:"150"`
}

func (it Item) allNames() []string {
	names := make([]string, 0, len(it.Names)+1)
	if it.Name != "" {
		names = append(names, it.Name)
	}
	return append(names, it.Names...)
}

// Box is an item ready for placement: dimensions in internal units after
// any shrink rule has been applied. Source keeps the catalog values.
type Box struct {
	Name    string
	Length  int
	Width   int
	Height  int
	WeightG int
	Source  Item
}

// NewBox converts an item to a box without applying any shrink rule.
func NewBox(it Item) Box {
	return Box{
		Name:    it.Name,
		Length:  ToMM(it.LengthCm),
		Width:   ToMM(it.WidthCm),
		Height:  ToMM(it.HeightCm),
		WeightG: it.WeightG,
		Source:  it,
	}
}

// Volume returns the box volume in cubic internal units.
func (b Box) Volume() int64 {
	return int64(b.Length) * int64(b.Width) * int64(b.Height)
}

// MaxDim returns the longest side.
func (b Box) MaxDim() int {
	return max(b.Length, b.Width, b.Height)
}

// Orientations returns the distinct axis assignments of the box as
// (width, depth, height) triples, in a fixed order.
func (b Box) Orientations() [][3]int {
	l, w, h := b.Length, b.Width, b.Height
	all := [...][3]int{
		{l, w, h}, {w, l, h},
		{l, h, w}, {h, l, w},
		{w, h, l}, {h, w, l},
	}
	out := make([][3]int, 0, len(all))
	for _, o := range all {
		dup := false
		for _, seen := range out {
			if seen == o {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, o)
		}
	}
	return out
}

// Flat returns the box turned so its longest side runs along x and its
// shortest side is vertical.
func (b Box) Flat() Box {
	d := []int{b.Length, b.Width, b.Height}
	sort.Sort(sort.Reverse(sort.IntSlice(d)))
	b.Length, b.Width, b.Height = d[0], d[1], d[2]
	return b
}

// ShrinkRule scales the dimensions of items that match any of its keywords
// (against item names) or categories.
type ShrinkRule struct {
	Name        string
	Keywords    []string
	Categories  []string
	ScaleLength float64
	ScaleWidth  float64
	ScaleHeight float64
}

func (r ShrinkRule) matches(it Item) bool {
	for _, name := range it.allNames() {
		lower := strings.ToLower(name)
		for _, kw := range r.Keywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				return true
			}
		}
	}
	if it.Category == "" {
		return false
	}
	for _, c := range r.Categories {
		if categoryMatches(it.Category, c) {
			return true
		}
	}
	return false
}

// categoryMatches compares ASCII spellings case-insensitively as a whole.
// Localized spellings match as substrings, so "レディースファッション"
// still counts.
func categoryMatches(category, want string) bool {
	if want == "" {
		return false
	}
	if isASCII(want) {
		return strings.EqualFold(category, want)
	}
	return strings.Contains(category, want)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Classifier applies the first matching shrink rule to an item.
type Classifier struct {
	Rules []ShrinkRule
}

// DefaultClassifier compresses soft toys isotropically and folds fashion
// items to a lower height.
func DefaultClassifier() Classifier {
	return Classifier{Rules: []ShrinkRule{
		{
			Name:        "plush",
			Keywords:    []string{"plush", "ぬいぐるみ", "ちびぐるみ"},
			ScaleLength: 0.6,
			ScaleWidth:  0.6,
			ScaleHeight: 0.6,
		},
		{
			Name:        "fashion",
			Categories:  []string{"fashion", "ファッション"},
			ScaleLength: 1,
			ScaleWidth:  1,
			ScaleHeight: 0.8,
		},
	}}
}

// Match returns the first rule matching it.
func (c Classifier) Match(it Item) (ShrinkRule, bool) {
	for _, r := range c.Rules {
		if r.matches(it) {
			return r, true
		}
	}
	return ShrinkRule{}, false
}

// Preprocess converts an item into the box fed to placement.
func (c Classifier) Preprocess(it Item) Box {
	r, ok := c.Match(it)
	if !ok {
		return NewBox(it)
	}
	return Box{
		Name:    it.Name,
		Length:  ToMM(it.LengthCm * r.ScaleLength),
		Width:   ToMM(it.WidthCm * r.ScaleWidth),
		Height:  ToMM(it.HeightCm * r.ScaleHeight),
		WeightG: it.WeightG,
		Source:  it,
	}
}

// PreprocessAll converts every item.
func (c Classifier) PreprocessAll(items []Item) []Box {
	boxes := make([]Box, len(items))
	for i, it := range items {
		boxes[i] = c.Preprocess(it)
	}
	return boxes
}
