package services

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/threecat/bonus-service/internal/models"
	"github.com/threecat/bonus-service/internal/utils"
)

// orderedAtRe matches the POS export's combined timestamp field, e.g.
// "11:12 AM 6/1/2024". Rows that fail it go through a whitespace-split
// fallback before being dropped.
var orderedAtRe = regexp.MustCompile(`(\d{1,2}:\d{2}\s*(?:AM|PM))\s*(\d{1,2}/\d{1,2}/\d{4})`)

// OrderService decodes POS order exports and folds accepted records
// into per-day, per-shift drink totals.
type OrderService struct{}

func NewOrderService() *OrderService {
	return &OrderService{}
}

// ParseOrderExport reads a comma-separated export with a header row and
// returns the accepted order records. Rows without a resolvable date,
// time, and at least one drink are dropped silently: source exports
// routinely contain voided and cancelled rows, so this is an acceptance
// filter, not an error path.
func (s *OrderService) ParseOrderExport(r io.Reader) (orders []models.OrderRecord, dropped int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var headers []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if headers == nil {
			headers = utils.SplitCSVLine(line)
			for i := range headers {
				headers[i] = strings.Trim(headers[i], `"`)
			}
			continue
		}

		row := make(map[string]string, len(headers))
		values := utils.SplitCSVLine(line)
		for i, h := range headers {
			if i < len(values) {
				row[h] = values[i]
			} else {
				row[h] = ""
			}
		}

		order, ok := decodeOrderRow(row)
		if !ok {
			dropped++
			continue
		}
		orders = append(orders, order)
	}
	if err := scanner.Err(); err != nil {
		return nil, dropped, err
	}

	utils.Logger.Infof("Parsed order export: %d accepted, %d dropped", len(orders), dropped)
	return orders, dropped, nil
}

func decodeOrderRow(row map[string]string) (models.OrderRecord, bool) {
	orderedAt := row["Ordered At"]
	items := row["Items"]

	var timeStr, dateStr string
	if m := orderedAtRe.FindStringSubmatch(orderedAt); m != nil {
		timeStr = m[1]
		dateStr = m[2]
	} else {
		// Fallback: reassemble the first two whitespace tokens as the
		// time and take the third as the date.
		parts := strings.Fields(orderedAt)
		if len(parts) >= 3 {
			timeStr = parts[0] + " " + parts[1]
			dateStr = parts[2]
		}
	}

	drinkCount := countDrinks(items)
	if timeStr == "" || dateStr == "" || drinkCount == 0 {
		return models.OrderRecord{}, false
	}

	timeMinutes, err := utils.ParseClockTime(timeStr)
	if err != nil {
		return models.OrderRecord{}, false
	}
	date, err := utils.NormalizeDate(dateStr)
	if err != nil {
		return models.OrderRecord{}, false
	}

	return models.OrderRecord{
		OrderNumber: row["Order #"],
		OrderedAt:   orderedAt,
		Status:      row["Status"],
		Customer:    row["Customer"],
		Items:       items,
		Total:       row["Total"],
		Date:        date,
		TimeMinutes: timeMinutes,
		DrinkCount:  drinkCount,
	}, true
}

// countDrinks counts the non-empty, semicolon-delimited item entries.
func countDrinks(items string) int {
	if items == "" {
		return 0
	}
	count := 0
	for _, item := range strings.Split(items, ";") {
		if strings.TrimSpace(item) != "" {
			count++
		}
	}
	return count
}

// ClassifyOrder decides which shift bucket an order time belongs to.
// Under the custom policy a single cutoff splits the day. Under the
// time-based policy the morning window is authoritative: anything
// inside [morningStart, morningEnd) is morning, everything else is
// night, whether or not it falls inside the configured night range.
func ClassifyOrder(timeMinutes int, settings models.SplitSettings) models.ShiftType {
	if settings.Method == models.SplitCustom {
		if timeMinutes >= settings.CustomCutoff {
			return models.ShiftNight
		}
		return models.ShiftMorning
	}
	if timeMinutes >= settings.MorningStart && timeMinutes < settings.MorningEnd {
		return models.ShiftMorning
	}
	return models.ShiftNight
}

// CountDrinksByShift folds order records into calendar-date × shift
// drink totals.
func (s *OrderService) CountDrinksByShift(orders []models.OrderRecord, settings models.SplitSettings) models.ShiftBucketTotals {
	totals := make(models.ShiftBucketTotals)
	for _, order := range orders {
		counts, ok := totals[order.Date]
		if !ok {
			counts = &models.BucketCounts{}
			totals[order.Date] = counts
		}
		if ClassifyOrder(order.TimeMinutes, settings) == models.ShiftNight {
			counts.Night += order.DrinkCount
		} else {
			counts.Morning += order.DrinkCount
		}
	}
	return totals
}
