package trends

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrendsURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want TrendsURL
	}{
		{
			name: "full url with date range",
			raw:  "https://www.cargurus.com/research/price-trends/tesla-model-3?entityIds=c24985&startDate=1704067200000&endDate=1706745599999",
			want: TrendsURL{
				ModelPath: "tesla-model-3",
				EntityID:  "c24985",
				StartDate: "2024-01-01",
				EndDate:   "2024-01-31",
			},
		},
		{
			name: "shell-escaped query metacharacters",
			raw:  `https://www.cargurus.com/research/price-trends/tesla-model-3\?entityIds\=c24985\&startDate\=1704067200000`,
			want: TrendsURL{
				ModelPath: "tesla-model-3",
				EntityID:  "c24985",
				StartDate: "2024-01-01",
			},
		},
		{
			name: "no explicit range",
			raw:  "https://www.cargurus.com/research/price-trends/honda-civic?entityIds=d2206",
			want: TrendsURL{ModelPath: "honda-civic", EntityID: "d2206"},
		},
		{
			name: "intl-prefixed path",
			raw:  "https://www.cargurus.com/de/research/price-trends/bmw-3er?entityIds=d99",
			want: TrendsURL{ModelPath: "bmw-3er", EntityID: "d99"},
		},
		{
			name: "malformed millis are ignored",
			raw:  "https://www.cargurus.com/research/price-trends/honda-civic?entityIds=d2206&startDate=notmillis&endDate=-5",
			want: TrendsURL{ModelPath: "honda-civic", EntityID: "d2206"},
		},
		{
			name: "surrounding whitespace",
			raw:  "  https://www.cargurus.com/research/price-trends/honda-civic?entityIds=d2206\n",
			want: TrendsURL{ModelPath: "honda-civic", EntityID: "d2206"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTrendsURL(tt.raw)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTrendsURL_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name:    "not a price-trends page",
			raw:     "https://www.cargurus.com/Cars/spt_used_cars?entityIds=d1",
			wantErr: "not a price-trends url",
		},
		{
			name:    "missing model path",
			raw:     "https://www.cargurus.com/de/research/price-trends?entityIds=d1",
			wantErr: "no model path",
		},
		{
			name:    "missing entity ids",
			raw:     "https://www.cargurus.com/research/price-trends/tesla-model-3?startDate=1704067200000",
			wantErr: "no entityIds",
		},
		{
			name:    "unparseable url",
			raw:     "https://www.cargurus.com/research/price-trends/x%zz?entityIds=1",
			wantErr: "parsing url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTrendsURL(tt.raw)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
