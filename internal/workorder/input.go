package workorder

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"workshop-backend/internal/model"
)

const dateLayout = model.DateLayout

// Money columns are decimal(12,2): two fractional digits, below 10^10.
const (
	moneyScale           = 2
	MaxDescriptionLength = 255
)

var maxMoney = decimal.New(1, 10)

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID   uint
	Role model.Role
}

// CreateInput holds the fields for opening a work order.
type CreateInput struct {
	VehicleID        uint
	EntryDate        string // YYYY-MM-DD, optional
	FaultDescription string
}

// validate checks the input and resolves the entry date, defaulting to today.
func (in CreateInput) validate(now time.Time) (time.Time, error) {
	if in.VehicleID == 0 {
		return time.Time{}, BadRequest("vehicle_id is required")
	}
	if strings.TrimSpace(in.FaultDescription) == "" {
		return time.Time{}, BadRequest("fault_description must not be empty")
	}
	if in.EntryDate == "" {
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	entry, err := time.Parse(dateLayout, in.EntryDate)
	if err != nil {
		return time.Time{}, BadRequest("entry_date %q is not a valid YYYY-MM-DD date", in.EntryDate)
	}
	return entry, nil
}

// StatusChangeInput requests a move to another status.
type StatusChangeInput struct {
	ToStatus model.Status
	Note     string
}

func (in StatusChangeInput) validate() error {
	if in.ToStatus == "" {
		return BadRequest("toStatus is required")
	}
	if !in.ToStatus.Valid() {
		return BadRequest("unknown status %q; valid statuses: %s", in.ToStatus, formatStatuses(model.Statuses))
	}
	return nil
}

// AddItemInput describes a new line item.
type AddItemInput struct {
	Type        model.ItemType
	Description string
	Count       int
	UnitValue   decimal.Decimal
}

func (in AddItemInput) validate() error {
	if in.Count < 1 {
		return BadRequest("count must be an integer >= 1, got %d", in.Count)
	}
	if in.UnitValue.IsNegative() {
		return BadRequest("unit_value must be >= 0, got %s", in.UnitValue.String())
	}
	if !in.UnitValue.Equal(in.UnitValue.Round(moneyScale)) {
		return BadRequest("unit_value must have at most %d decimal places, got %s", moneyScale, in.UnitValue.String())
	}
	if in.UnitValue.GreaterThanOrEqual(maxMoney) {
		return BadRequest("unit_value must be < %s, got %s", maxMoney.String(), in.UnitValue.String())
	}
	if subtotal := in.UnitValue.Mul(decimal.NewFromInt(int64(in.Count))); subtotal.GreaterThanOrEqual(maxMoney) {
		return BadRequest("count * unit_value must be < %s, got %s", maxMoney.String(), subtotal.String())
	}
	if strings.TrimSpace(in.Description) == "" {
		return BadRequest("description must not be empty")
	}
	if n := utf8.RuneCountInString(in.Description); n > MaxDescriptionLength {
		return BadRequest("description must be at most %d characters, got %d", MaxDescriptionLength, n)
	}
	if !in.Type.Valid() {
		return BadRequest("type must be %s or %s, got %q", model.ItemTypeLabor, model.ItemTypePart, in.Type)
	}
	return nil
}

// ListFilters narrows the work order listing.
type ListFilters struct {
	Status model.Status
	Plate  string
}

// Pagination describes one page of a listing.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

const (
	DefaultOrderPageSize   = 10
	DefaultHistoryPageSize = 50
	MaxPageSize            = 100
)

// maxPage keeps (page-1)*pageSize well inside an int.
const maxPage = math.MaxInt32 / MaxPageSize

// normalizePage clamps page and size to sane values.
func normalizePage(page, size, defaultSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if size < 1 {
		size = defaultSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

func newPagination(total int64, page, size int) Pagination {
	totalPages := int((total + int64(size) - 1) / int64(size))
	return Pagination{Total: total, Page: page, PageSize: size, TotalPages: totalPages}
}
