// Stubserver is a local stand-in for the price-trends endpoint, for trying
// carworth without a session cookie. It answers any entity with a synthetic
// weekly depreciation curve inside the requested window.
//
// Usage:
//
//	go run ./scripts/stubserver -addr :8480 -price 31000
//	carworth fetch -account "Stub Car" -entity c1 -model stub-car \
//	  -cookie X -start 2024-01-01 -end 2024-06-30
//
// with provider.base_url pointing at http://localhost:8480.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"
)

const dayMs = 24 * int64(time.Hour/time.Millisecond)

func main() {
	addr := flag.String("addr", ":8480", "listen address")
	price := flag.Float64("price", 31000, "starting price of the synthetic curve")
	weeklyDrop := flag.Float64("weekly-drop", 45.5, "price decrease per emitted point")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		start, err := strconv.ParseInt(r.URL.Query().Get("startDate"), 10, 64)
		if err != nil {
			http.Error(w, "startDate must be epoch milliseconds", http.StatusBadRequest)
			return
		}
		end, err := strconv.ParseInt(r.URL.Query().Get("endDate"), 10, 64)
		if err != nil {
			http.Error(w, "endDate must be epoch milliseconds", http.StatusBadRequest)
			return
		}

		points := ""
		for ms, i := start, 0; ms <= end; ms, i = ms+7*dayMs, i+1 {
			if i > 0 {
				points += ","
			}
			points += fmt.Sprintf(`{"date":%d,"price":%.2f}`,
				ms, *price-float64(i)*(*weeklyDrop))
		}

		log.Info("serving window",
			"path", r.URL.Path,
			"entity", r.URL.Query().Get("entityIds"),
			"points", (end-start)/(7*dayMs)+1,
		)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"pricePointsEntities":[{"pricePoints":[%s]}]}`, points)
	})

	log.Info("stub price-trends server listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
