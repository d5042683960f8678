package customers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"greengrass/internal/models"

	"github.com/google/uuid"
)

var ErrNoValidRows = errors.New("No valid customers found in CSV")

// ParseCSV reads customer rows from r. The first record is a header whose
// column names are matched case-insensitively; the name comes from
// full_name or name. Rows without a name are skipped, empty optional
// fields become NULL and every row gets a fresh user id.
func ParseCSV(r io.Reader) ([]models.Customer, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoValidRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	field := func(record []string, names ...string) string {
		for _, name := range names {
			if i, ok := columns[name]; ok && i < len(record) {
				if v := strings.TrimSpace(record[i]); v != "" {
					return v
				}
			}
		}
		return ""
	}

	var out []models.Customer
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}

		name := field(record, "full_name", "name")
		if name == "" {
			continue
		}

		out = append(out, models.Customer{
			UserID:   uuid.New().String(),
			FullName: &name,
			Phone:    nullable(field(record, "phone")),
			Address:  nullable(field(record, "address")),
			City:     nullable(field(record, "city")),
			Country:  nullable(field(record, "country")),
		})
	}

	if len(out) == 0 {
		return nil, ErrNoValidRows
	}
	return out, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var exportHeader = []string{"Name", "Phone", "Address", "City", "Country", "Orders", "Total Spent (AED)", "Joined Date"}

// WriteCSV writes customers in the admin export layout.
func WriteCSV(w io.Writer, customers []CustomerWithStats) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}

	for _, c := range customers {
		record := []string{
			deref(c.FullName),
			deref(c.Phone),
			deref(c.Address),
			deref(c.City),
			deref(c.Country),
			fmt.Sprintf("%d", c.OrdersCount),
			fmt.Sprintf("%.2f", c.TotalSpent),
			c.CreatedAt.Format("2006-01-02"),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
