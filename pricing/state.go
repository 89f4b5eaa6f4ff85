package pricing

import (
	"encoding/json"
	"errors"
	"slices"
)

// StorageKey is the local-storage key clients persist the selection under.
const StorageKey = "quoteState"

var ErrCatalogUnavailable = errors.New("catalog has not been loaded")

type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "loading"
	}
}

type Catalog struct {
	Cars    []Car    `json:"cars"`
	Colors  []Color  `json:"colors"`
	Options []Option `json:"options"`
}

// Selection is the user's input. It is what gets mirrored to client storage.
type Selection struct {
	CarID       int64    `json:"selectedCarId"`
	ColorCode   string   `json:"selectedColorCode"`
	OptionCodes []string `json:"selectedOptionCodes"`
	Discount    Discount `json:"discount"`
	Delivery    Delivery `json:"delivery"`
}

// Derived is recomputed from the catalog and the selection on every call to Derive.
type Derived struct {
	Car             *Car     `json:"currentCar"`
	Color           *Color   `json:"currentColor"`
	SelectedOptions []Option `json:"selectedOptions"`
	Totals
}

// QuoteSnapshot is the subset of a saved quote needed to resume editing it.
type QuoteSnapshot struct {
	ID             string
	CarID          int64
	ColorCode      string
	OptionCodes    []string
	DiscountName   string
	DiscountAmount int64
	DeliveryRegion string
	DeliveryFee    int64
}

// Submission mirrors the body of a quote create or update request.
type Submission struct {
	CarID          int64    `json:"carId"`
	ColorCode      string   `json:"colorCode"`
	OptionCodes    []string `json:"optionCodes"`
	DiscountName   string   `json:"discountName"`
	DiscountAmount int64    `json:"discountAmount"`
	DeliveryRegion string   `json:"deliveryRegion"`
	DeliveryFee    int64    `json:"deliveryFee"`
	Subtotal       int64    `json:"subtotal"`
	Total          int64    `json:"total"`
}

// State holds a catalog and an in-progress selection. It is not safe for concurrent use.
type State struct {
	catalog   Catalog
	status    Status
	loadErr   error
	selection Selection
	selected  map[string]struct{}
	editingID string
}

func NewState() *State {
	return &State{selected: map[string]struct{}{}}
}

// Load installs a freshly fetched catalog and marks the state ready.
func (s *State) Load(c Catalog) {
	s.catalog = c
	s.status = StatusReady
	s.loadErr = nil
}

// Fail records a catalog fetch failure. Derive reports err until the next Load.
func (s *State) Fail(err error) {
	s.status = StatusFailed
	s.loadErr = err
}

func (s *State) Status() Status {
	return s.status
}

func (s *State) Err() error {
	return s.loadErr
}

func (s *State) SelectCar(id int64) {
	s.selection.CarID = id
}

func (s *State) SelectColor(code string) {
	s.selection.ColorCode = code
}

// ToggleOption adds code when absent and removes it when present.
func (s *State) ToggleOption(code string) {
	if _, ok := s.selected[code]; ok {
		delete(s.selected, code)
		return
	}
	s.selected[code] = struct{}{}
}

// SetOptions replaces the selected option set. Duplicates collapse.
func (s *State) SetOptions(codes []string) {
	s.selected = make(map[string]struct{}, len(codes))
	for _, c := range codes {
		s.selected[c] = struct{}{}
	}
}

func (s *State) SetDiscount(d Discount) {
	s.selection.Discount = d
}

func (s *State) SetDelivery(d Delivery) {
	s.selection.Delivery = d
}

// Selection returns a copy of the current input with option codes in catalog order,
// followed by any codes the catalog does not know, sorted.
func (s *State) Selection() Selection {
	sel := s.selection
	sel.OptionCodes = s.orderedCodes()
	return sel
}

func (s *State) orderedCodes() []string {
	codes := make([]string, 0, len(s.selected))
	known := make(map[string]struct{}, len(s.selected))
	for _, o := range s.catalog.Options {
		if _, ok := s.selected[o.Code]; ok {
			codes = append(codes, o.Code)
			known[o.Code] = struct{}{}
		}
	}

	var unknown []string
	for c := range s.selected {
		if _, ok := known[c]; !ok {
			unknown = append(unknown, c)
		}
	}
	slices.Sort(unknown)
	return append(codes, unknown...)
}

// Derive resolves the selection against the catalog. It fails while the catalog
// is loading or after a failed fetch, so a missing catalog never reads as a zero total.
func (s *State) Derive() (*Derived, error) {
	switch s.status {
	case StatusFailed:
		if s.loadErr != nil {
			return nil, s.loadErr
		}
		return nil, ErrCatalogUnavailable
	case StatusLoading:
		return nil, ErrCatalogUnavailable
	}

	d := &Derived{SelectedOptions: []Option{}}
	for i := range s.catalog.Cars {
		if s.catalog.Cars[i].ID == s.selection.CarID {
			car := s.catalog.Cars[i]
			d.Car = &car
			break
		}
	}
	for i := range s.catalog.Colors {
		if s.catalog.Colors[i].Code == s.selection.ColorCode {
			color := s.catalog.Colors[i]
			d.Color = &color
			break
		}
	}
	for _, o := range s.catalog.Options {
		if _, ok := s.selected[o.Code]; ok {
			d.SelectedOptions = append(d.SelectedOptions, o)
		}
	}

	d.Totals = Compute(d.Car, d.Color, d.SelectedOptions, s.selection.Discount, s.selection.Delivery)
	return d, nil
}

// LoadQuoteForEdit replaces the selection with a saved quote and enters edit mode.
func (s *State) LoadQuoteForEdit(q QuoteSnapshot) {
	s.selection = Selection{
		CarID:     q.CarID,
		ColorCode: q.ColorCode,
		Discount:  Discount{Name: q.DiscountName, Amount: q.DiscountAmount},
		Delivery:  Delivery{Region: q.DeliveryRegion, Fee: q.DeliveryFee},
	}
	s.SetOptions(q.OptionCodes)
	s.editingID = q.ID
}

// ClearEditMode leaves edit mode. Call it after a successful update or when the user navigates away.
func (s *State) ClearEditMode() {
	s.editingID = ""
}

func (s *State) IsEditing() bool {
	return s.editingID != ""
}

func (s *State) EditingQuoteID() string {
	return s.editingID
}

// Submission builds the request body for the current selection. The caller
// sends it as an update when IsEditing reports true.
func (s *State) Submission() (*Submission, error) {
	d, err := s.Derive()
	if err != nil {
		return nil, err
	}

	return &Submission{
		CarID:          s.selection.CarID,
		ColorCode:      s.selection.ColorCode,
		OptionCodes:    s.orderedCodes(),
		DiscountName:   s.selection.Discount.Name,
		DiscountAmount: s.selection.Discount.Amount,
		DeliveryRegion: s.selection.Delivery.Region,
		DeliveryFee:    s.selection.Delivery.Fee,
		Subtotal:       d.Subtotal,
		Total:          d.Total,
	}, nil
}

// MarshalSelection encodes the selection for client storage.
func (s *State) MarshalSelection() ([]byte, error) {
	return json.Marshal(s.Selection())
}

// RestoreSelection applies a stored selection. Unreadable data falls back to
// the defaults: first car, first color, nothing else selected.
func (s *State) RestoreSelection(data []byte) error {
	var sel Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		s.ResetToDefaults()
		return err
	}

	s.selection = sel
	s.SetOptions(sel.OptionCodes)
	s.selection.OptionCodes = nil
	return nil
}

// ResetToDefaults selects the first catalog car and color and clears everything else.
func (s *State) ResetToDefaults() {
	s.selection = Selection{}
	s.selected = map[string]struct{}{}
	if len(s.catalog.Cars) > 0 {
		s.selection.CarID = s.catalog.Cars[0].ID
	}
	if len(s.catalog.Colors) > 0 {
		s.selection.ColorCode = s.catalog.Colors[0].Code
	}
}
