package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tanafus/engine/pkg/artext"
)

const (
	minBlockRows     = 2
	blockScoreFloor  = 30
	minRowCells      = 3
	minPlausibleRows = 3
	maxPlausibleRows = 100
)

var (
	cellDelimiter = regexp.MustCompile(`\t+| {3,}`)
	bareNumber    = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// unitKeywords is the closed set of Arabic unit-of-measure terms used both
// for block scoring and for header matching. Keys are letter-folded.
var unitKeywords = map[string]struct{}{
	"عدد": {}, "قطعه": {}, "متر": {}, "متر مربع": {}, "متر مكعب": {},
	"م2": {}, "م3": {}, "متر طولي": {}, "لتر": {}, "كجم": {}, "كيلو": {},
	"طن": {}, "مجموعه": {}, "لفه": {}, "كرتون": {}, "علبه": {}, "جلسه": {},
	"ساعه": {}, "يوم": {}, "شهر": {}, "زياره": {}, "مقطوعيه": {},
}

// categoryKeywords is the closed set of work-category terms used by the
// second-column heuristic. Keys are letter-folded.
var categoryKeywords = map[string]struct{}{
	"توريد": {}, "تركيب": {}, "توريد وتركيب": {}, "صيانه": {},
	"تشغيل": {}, "انشاء": {}, "خدمات": {}, "اعمال": {}, "تاهيل": {},
}

// headerKeywords maps header-cell substrings to column roles.
var headerKeywords = []struct {
	term string
	role columnRole
}{
	{"تسلسل", roleSequence},
	{"رقم البند", roleSequence},
	{"الوصف", roleDescription},
	{"البيان", roleDescription},
	{"وصف", roleDescription},
	{"الصنف", roleDescription},
	{"الاعمال", roleDescription},
	{"الفئه", roleCategory},
	{"التصنيف", roleCategory},
	{"النوع", roleCategory},
	{"المواصفات", roleSpecification},
	{"مواصفات", roleSpecification},
	{"وحده", roleUnit},
	{"الوحده", roleUnit},
	{"الكميه", roleQuantity},
	{"العدد", roleQuantity},
	{"سعر", rolePrice},
	{"الاجمالي", roleTotal},
	{"المجموع", roleTotal},
	{"م", roleSequence},
	{"بند", roleCategory},
}

type columnRole int

const (
	roleNone columnRole = iota
	roleSequence
	roleCategory
	roleDescription
	roleSpecification
	roleUnit
	roleQuantity
	rolePrice
	roleTotal
)

// columnMap assigns a column index per role; -1 means the role is absent.
type columnMap struct {
	sequence      int
	category      int
	description   int
	specification int
	unit          int
	quantity      int
	confidence    int
	hasHeader     bool
}

func emptyColumnMap(confidence int) columnMap {
	return columnMap{
		sequence: -1, category: -1, description: -1,
		specification: -1, unit: -1, quantity: -1,
		confidence: confidence,
	}
}

type tableRow struct {
	cells []string
}

// ExtractLineItems detects the most plausible bill-of-quantities table in
// sectionText and materializes its rows into structured line items. When no
// candidate block reaches the score floor it reports zero items rather than
// forcing a low-confidence guess.
func ExtractLineItems(sectionText string) BOQ {
	sectionText = artext.FoldDigits(sectionText)

	blocks := detectBlocks(sectionText)

	var (
		best      []tableRow
		bestScore int
	)
	for _, b := range blocks {
		if s := scoreBlock(b); s > bestScore {
			best, bestScore = b, s
		}
	}

	if bestScore < blockScoreFloor {
		return BOQ{PricingType: PricingMixed}
	}

	cm := mapColumns(best)
	items := materializeRows(best, cm)

	return BOQ{
		Items:       items,
		PricingType: classifyPricing(items),
		Confidence:  cm.confidence,
	}
}

// detectBlocks groups consecutive row-candidate lines. A line qualifies when
// splitting on tabs or 3+ consecutive spaces yields at least three non-empty
// cells; any non-candidate line (blank included) breaks the block.
func detectBlocks(text string) [][]tableRow {
	var (
		blocks  [][]tableRow
		current []tableRow
	)

	flush := func() {
		if len(current) >= minBlockRows {
			blocks = append(blocks, current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		cells := splitCells(line)
		if len(cells) < minRowCells {
			flush()
			continue
		}
		current = append(current, tableRow{cells: cells})
	}
	flush()

	return blocks
}

func splitCells(line string) []string {
	var cells []string
	for _, c := range cellDelimiter.Split(line, -1) {
		c = strings.TrimSpace(c)
		if c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

// scoreBlock rates a candidate block with five independent signals, each
// contributing a fixed point value.
func scoreBlock(rows []tableRow) int {
	score := 0

	if hasOrderedFirstColumn(rows) {
		score += 30
	}
	if anyCell(rows, isUnitKeyword) {
		score += 25
	}
	if anyCell(rows, func(c string) bool { return bareNumber.MatchString(c) }) {
		score += 20
	}
	if len(rows) >= minPlausibleRows && len(rows) <= maxPlausibleRows {
		score += 15
	}
	if modal, freq := modalColumnCount(rows); modal > 0 && freq > 0.8 {
		score += 10
	}

	return score
}

// hasOrderedFirstColumn reports whether first-column values form a
// non-decreasing integer run. One unparseable row is tolerated for a header.
func hasOrderedFirstColumn(rows []tableRow) bool {
	var values []int
	for _, r := range rows {
		if n, err := strconv.Atoi(r.cells[0]); err == nil {
			values = append(values, n)
		}
	}

	if len(values) < 2 || len(values) < len(rows)-1 {
		return false
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return false
		}
	}
	return true
}

func anyCell(rows []tableRow, match func(string) bool) bool {
	for _, r := range rows {
		for _, c := range r.cells {
			if match(c) {
				return true
			}
		}
	}
	return false
}

func isUnitKeyword(cell string) bool {
	_, ok := unitKeywords[artext.FoldLetters(strings.TrimSpace(cell))]
	return ok
}

func isCategoryKeyword(cell string) bool {
	_, ok := categoryKeywords[artext.FoldLetters(strings.TrimSpace(cell))]
	return ok
}

func modalColumnCount(rows []tableRow) (int, float64) {
	counts := make(map[int]int)
	for _, r := range rows {
		counts[len(r.cells)]++
	}

	modal, best := 0, 0
	for cols, n := range counts {
		if n > best || (n == best && cols > modal) {
			modal, best = cols, n
		}
	}
	if len(rows) == 0 {
		return 0, 0
	}
	return modal, float64(best) / float64(len(rows))
}

// mapColumns infers the column-to-role mapping, in priority order: header
// keywords (75), second-column category heuristic (65), positional layout
// keyed by column count (55-60). The chosen strategy's confidence becomes
// every item's per-row confidence.
func mapColumns(rows []tableRow) columnMap {
	if cm, ok := mapFromHeader(rows[0]); ok {
		return cm
	}

	modal, _ := modalColumnCount(rows)

	if categoryColumnLikely(rows) {
		cm := emptyColumnMap(65)
		cm.sequence = 0
		cm.category = 1
		cm.description = 2
		if modal >= 4 {
			cm.unit = 3
		}
		if modal >= 5 {
			cm.quantity = 4
		}
		if modal >= 6 {
			cm.specification = 5
		}
		return cm
	}

	switch {
	case modal >= 6:
		cm := emptyColumnMap(60)
		cm.sequence = 0
		cm.category = 1
		cm.description = 2
		cm.specification = 3
		cm.unit = 4
		cm.quantity = 5
		return cm
	case modal == 5:
		cm := emptyColumnMap(60)
		cm.sequence = 0
		cm.category = 1
		cm.description = 2
		cm.unit = 3
		cm.quantity = 4
		return cm
	default:
		cm := emptyColumnMap(55)
		cm.sequence = 0
		cm.description = 1
		cm.unit = 2
		cm.quantity = 3
		return cm
	}
}

// mapFromHeader attempts keyword mapping against the first row. It applies
// only when the leading cell is non-numeric, and is accepted only when a
// description column is identified.
func mapFromHeader(header tableRow) (columnMap, bool) {
	if bareNumber.MatchString(header.cells[0]) {
		return columnMap{}, false
	}

	cm := emptyColumnMap(75)
	cm.hasHeader = true

	for i, cell := range header.cells {
		switch headerRole(cell) {
		case roleSequence:
			setIfAbsent(&cm.sequence, i)
		case roleCategory:
			setIfAbsent(&cm.category, i)
		case roleDescription:
			setIfAbsent(&cm.description, i)
		case roleSpecification:
			setIfAbsent(&cm.specification, i)
		case roleUnit:
			setIfAbsent(&cm.unit, i)
		case roleQuantity:
			setIfAbsent(&cm.quantity, i)
		}
	}

	if cm.description == -1 {
		return columnMap{}, false
	}
	return cm, true
}

func headerRole(cell string) columnRole {
	folded := artext.FoldLetters(strings.TrimSpace(cell))
	for _, hk := range headerKeywords {
		if hk.term == "م" {
			// single-letter sequence marker requires an exact match
			if folded == hk.term {
				return hk.role
			}
			continue
		}
		if strings.Contains(folded, hk.term) {
			return hk.role
		}
	}
	return roleNone
}

func setIfAbsent(slot *int, idx int) {
	if *slot == -1 {
		*slot = idx
	}
}

// categoryColumnLikely reports whether the second cell matches a category
// keyword across at least 60% of rows.
func categoryColumnLikely(rows []tableRow) bool {
	if len(rows) == 0 {
		return false
	}

	hits := 0
	for _, r := range rows {
		if len(r.cells) > 1 && isCategoryKeyword(r.cells[1]) {
			hits++
		}
	}
	return float64(hits)/float64(len(rows)) >= 0.6
}

func materializeRows(rows []tableRow, cm columnMap) []LineItem {
	data := rows
	if cm.hasHeader {
		data = rows[1:]
	}

	var items []LineItem
	counter := 0
	for _, r := range data {
		description := cellAt(r, cm.description)
		if description == "" {
			continue
		}
		counter++

		item := LineItem{
			Sequence:    counter,
			Description: description,
			Confidence:  cm.confidence,
		}

		if seq := cellAt(r, cm.sequence); seq != "" {
			if n, err := strconv.Atoi(seq); err == nil && n > 0 {
				item.Sequence = n
			}
		}
		item.Category = optionalCell(r, cm.category)
		item.Specification = optionalCell(r, cm.specification)
		item.Unit = optionalCell(r, cm.unit)
		if q := cellAt(r, cm.quantity); q != "" {
			if v, ok := parseAmount(q); ok {
				item.Quantity = &v
			}
		}

		items = append(items, item)
	}

	return items
}

func cellAt(r tableRow, idx int) string {
	if idx < 0 || idx >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[idx])
}

func optionalCell(r tableRow, idx int) *string {
	c := cellAt(r, idx)
	if c == "" {
		return nil
	}
	return &c
}

// classifyPricing labels the bill unit_based when any item carries a
// category, else mixed. lump_sum is reserved for a signal the heuristic does
// not yet implement and is never emitted here.
func classifyPricing(items []LineItem) PricingType {
	for _, it := range items {
		if it.Category != nil {
			return PricingUnitBased
		}
	}
	return PricingMixed
}
