package api

import (
	"fmt"     // Error formatting
	"strconv" // Integer parsing

	"sharewallet/internal/ledger" // Ledger types

	"github.com/gin-gonic/gin" // Gin web framework
)

// optionalDate parses query parameter name as YYYY-MM-DD when present
func optionalDate(c *gin.Context, name string) (*ledger.Date, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil // Not supplied
	}
	d, err := ledger.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a YYYY-MM-DD date", ledger.ErrInvalidRequest, name)
	}
	return &d, nil
}

// optionalInt parses query parameter name as an integer when present
func optionalInt(c *gin.Context, name string) (*int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil // Not supplied
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", ledger.ErrInvalidRequest, name)
	}
	return &n, nil
}

// pathInt parses path parameter name as an integer
func pathInt(c *gin.Context, name string) (int64, error) {
	n, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ledger.ErrInvalidRequest, name)
	}
	return n, nil
}

// requiredWindow reads the mandatory from/to query parameters
func requiredWindow(c *gin.Context) (ledger.Window, error) {
	from, err := optionalDate(c, "from")
	if err != nil {
		return ledger.Window{}, err
	}
	to, err := optionalDate(c, "to")
	if err != nil {
		return ledger.Window{}, err
	}
	if from == nil || to == nil {
		return ledger.Window{}, fmt.Errorf("%w: from and to are required", ledger.ErrInvalidWindow)
	}
	w := ledger.Window{From: *from, To: *to}
	if err := w.Validate(); err != nil {
		return ledger.Window{}, err
	}
	return w, nil
}

// listFilter reads the optional list predicates
func listFilter(c *gin.Context) (ledger.Filter, error) {
	var f ledger.Filter
	var err error
	if f.From, err = optionalDate(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = optionalDate(c, "to"); err != nil {
		return f, err
	}
	if f.CategoryID, err = optionalInt(c, "category_id"); err != nil {
		return f, err
	}
	if f.UserID, err = optionalInt(c, "user_id"); err != nil {
		return f, err
	}
	f.Keyword = c.Query("keyword") // Blank means no keyword filter
	return f, nil
}
