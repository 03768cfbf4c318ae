package export

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/carworth/carworth/internal/dates"
	"github.com/carworth/carworth/internal/models"
)

func TestRows(t *testing.T) {
	points := []models.PricePoint{
		{Date: dates.MustParse("2024-01-01"), Price: decimal.RequireFromString("25000")},
		{Date: dates.MustParse("2024-01-02"), Price: decimal.RequireFromString("24800.5")},
		{Date: dates.MustParse("2024-01-03"), Price: decimal.RequireFromString("100")},
	}

	rows := Rows(points, "2022 Honda Civic EX-L")

	assert.Equal(t, []models.OutputRow{
		{Date: dates.MustParse("2024-01-01"), Balance: "25000.00", Account: "2022 Honda Civic EX-L"},
		{Date: dates.MustParse("2024-01-02"), Balance: "24800.50", Account: "2022 Honda Civic EX-L"},
		{Date: dates.MustParse("2024-01-03"), Balance: "100.00", Account: "2022 Honda Civic EX-L"},
	}, rows)
}

func TestRows_Empty(t *testing.T) {
	assert.Empty(t, Rows(nil, "anything"))
}

func TestFilename(t *testing.T) {
	r := dates.Range{
		Start: dates.MustParse("2024-01-01"),
		End:   dates.MustParse("2024-06-30"),
	}

	tests := []struct {
		name    string
		account string
		want    string
	}{
		{
			name:    "spaces become underscores",
			account: "2022 Honda Civic EX-L",
			want:    "2022_Honda_Civic_EX-L_2024-01-01_2024-06-30.csv",
		},
		{
			name:    "filesystem-hostile characters are replaced",
			account: `Tesla: "Model 3" <LR/AWD>?`,
			want:    "Tesla___Model_3___LR_AWD_2024-01-01_2024-06-30.csv",
		},
		{
			name:    "leading and trailing underscores are trimmed",
			account: "  My Car  ",
			want:    "My_Car_2024-01-01_2024-06-30.csv",
		},
		{
			name:    "whitespace runs collapse",
			account: "My\t\tOld   Car",
			want:    "My_Old_Car_2024-01-01_2024-06-30.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.account, r))
		})
	}
}
