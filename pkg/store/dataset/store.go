package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

var (
	ErrMerchantNotFound = errors.New("merchant not found")
	ErrSliceNotFound    = errors.New("population slice not found")
)

// LoadError reports a required table that could not be loaded. Nothing can
// run without the required tables, so the caller is expected to abort.
type LoadError struct {
	Table string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading table %s: %v", e.Table, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type Settings struct {
	Dir string
}

type flowKey struct {
	scope domain.FlowScope
	dim   domain.FlowDimension
}

// Store holds every dataset table in memory. It is populated once during New
// and read only afterwards, so accessors need no locking.
type Store struct {
	merchants map[string]domain.Merchant
	ids       []string
	flows     map[flowKey]domain.FlowSlice
	workforce map[domain.FlowScope]domain.WorkforceSlice
	templates []domain.StrategyTemplate
}

func New(ctx context.Context, settings Settings) (*Store, error) {
	return NewFromSource(ctx, DirSource(settings.Dir))
}

func NewFromSource(ctx context.Context, src Source) (*Store, error) {
	s := &Store{
		merchants: make(map[string]domain.Merchant),
		flows:     make(map[flowKey]domain.FlowSlice),
		workforce: make(map[domain.FlowScope]domain.WorkforceSlice),
	}

	if err := s.loadMerchants(src); err != nil {
		return nil, err
	}
	if err := s.loadTemplates(src); err != nil {
		return nil, err
	}
	if err := s.loadFlows(src); err != nil {
		return nil, err
	}
	if err := s.loadWorkforce(src); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int("merchants", len(s.merchants)).
		Int("templates", len(s.templates)).
		Int("flow_slices", len(s.flows)).
		Msg("datasets loaded")

	return s, nil
}

// Merchant returns the collapsed profile for the given id.
func (s *Store) Merchant(id string) (domain.Merchant, error) {
	m, ok := s.merchants[id]
	if !ok {
		return domain.Merchant{}, fmt.Errorf("merchant %s: %w", id, ErrMerchantNotFound)
	}
	return m, nil
}

// Merchants returns every merchant ordered by id.
func (s *Store) Merchants() []domain.Merchant {
	all := make([]domain.Merchant, 0, len(s.ids))
	for _, id := range s.ids {
		all = append(all, s.merchants[id])
	}
	return all
}

// Peers returns every merchant in the given category and commercial area.
// An empty area selects the merchants outside every named area.
func (s *Store) Peers(category, area string) []domain.Merchant {
	var peers []domain.Merchant
	for _, id := range s.ids {
		m := s.merchants[id]
		if m.Category == category && m.CommercialArea == area {
			peers = append(peers, m)
		}
	}
	return peers
}

func (s *Store) FlowSlice(scope domain.FlowScope, dim domain.FlowDimension) (domain.FlowSlice, error) {
	slice, ok := s.flows[flowKey{scope: scope, dim: dim}]
	if !ok {
		return domain.FlowSlice{}, fmt.Errorf("%s/%s flow: %w", scope, dim, ErrSliceNotFound)
	}
	return slice, nil
}

func (s *Store) WorkforceSlice(scope domain.FlowScope) (domain.WorkforceSlice, error) {
	slice, ok := s.workforce[scope]
	if !ok {
		return domain.WorkforceSlice{}, fmt.Errorf("%s workforce: %w", scope, ErrSliceNotFound)
	}
	return slice, nil
}

// LookupTemplate resolves the strategy template for a category and area label
// (비상권 for merchants outside any named area). Tiers are tried in order:
// exact area and category match, then the strongest same-category template,
// then the strongest same-area one.
func (s *Store) LookupTemplate(category, area string) domain.TemplateMatch {
	if t, ok := s.pickTemplate(func(t domain.StrategyTemplate) bool {
		return t.Category == category && t.CommercialArea == area
	}); ok {
		return domain.TemplateMatch{Template: t, Tier: domain.MatchExact}
	}

	if t, ok := s.pickTemplate(func(t domain.StrategyTemplate) bool {
		return t.Category == category
	}); ok {
		return domain.TemplateMatch{Template: t, Tier: domain.MatchCategory}
	}

	if t, ok := s.pickTemplate(func(t domain.StrategyTemplate) bool {
		return t.CommercialArea == area
	}); ok {
		return domain.TemplateMatch{Template: t, Tier: domain.MatchArea}
	}

	return domain.TemplateMatch{Tier: domain.MatchNone}
}

// pickTemplate returns the matching template with the highest importance,
// keeping file order on ties.
func (s *Store) pickTemplate(match func(domain.StrategyTemplate) bool) (domain.StrategyTemplate, bool) {
	var best domain.StrategyTemplate
	var found bool
	for _, t := range s.templates {
		if !match(t) {
			continue
		}
		if !found || moreImportant(t, best) {
			best = t
			found = true
		}
	}
	return best, found
}

func moreImportant(a, b domain.StrategyTemplate) bool {
	if math.IsNaN(a.Importance) {
		return false
	}
	if math.IsNaN(b.Importance) {
		return true
	}
	return a.Importance > b.Importance
}

type monthlyRow struct {
	month    string
	name     string
	category string
	area     string
	address  string
	station  string
	tiers    [4]string
	scores   [4]float64
	rates    [6]float64
	personas [10]float64
}

func (s *Store) loadMerchants(src Source) error {
	t, err := readTable(src, FileMerchants)
	if err != nil {
		return &LoadError{Table: FileMerchants, Err: err}
	}

	required := []string{
		colMerchantID, colMerchantName, colMonth, colCategory, colArea,
		colRevisitRate, colNewRate,
	}
	for _, pc := range personaColumns {
		required = append(required, pc.col)
	}
	if err := t.require(required...); err != nil {
		return &LoadError{Table: FileMerchants, Err: err}
	}

	groups := make(map[string][]monthlyRow)
	for _, row := range t.rows {
		id := t.text(row, colMerchantID)
		category := t.text(row, colCategory)
		if id == "" || category == "" {
			continue
		}

		m := monthlyRow{
			month:    t.text(row, colMonth),
			name:     t.text(row, colMerchantName),
			category: category,
			area:     t.text(row, colArea),
			address:  t.text(row, colAddress),
			station:  t.text(row, colStation),
		}
		for i, c := range tierColumns {
			m.tiers[i] = t.text(row, c)
			if score := domain.TierScore(m.tiers[i]); score > 0 {
				m.scores[i] = float64(score)
			} else {
				m.scores[i] = math.NaN()
			}
		}
		for i, c := range rateColumns {
			m.rates[i] = t.number(row, c)
		}
		for i, pc := range personaColumns {
			m.personas[i] = t.number(row, pc.col)
		}

		groups[id] = append(groups[id], m)
	}

	if len(groups) == 0 {
		return &LoadError{Table: FileMerchants, Err: errors.New("no usable rows")}
	}

	for id, rows := range groups {
		s.merchants[id] = collapse(id, rows)
		s.ids = append(s.ids, id)
	}
	sort.Strings(s.ids)

	return nil
}

// collapse folds the monthly rows of one merchant into a single profile:
// categorical fields from the latest month, rates and band scores averaged
// over the months that carried a value, persona shares from the latest month.
func collapse(id string, rows []monthlyRow) domain.Merchant {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].month < rows[j].month })
	latest := rows[len(rows)-1]

	m := domain.Merchant{
		ID:             id,
		Name:           latest.name,
		Category:       latest.category,
		CommercialArea: latest.area,
		Address:        latest.address,
		Station:        latest.station,
		LatestMonth:    latest.month,
		SalesTier:      latest.tiers[0],
		CustomerTier:   latest.tiers[1],
		TicketTier:     latest.tiers[2],
		TenureTier:     latest.tiers[3],
	}

	m.SalesScore = meanOver(rows, func(r monthlyRow) float64 { return r.scores[0] })
	m.CustomerScore = meanOver(rows, func(r monthlyRow) float64 { return r.scores[1] })
	m.TicketScore = meanOver(rows, func(r monthlyRow) float64 { return r.scores[2] })
	m.TenureScore = meanOver(rows, func(r monthlyRow) float64 { return r.scores[3] })

	m.RevisitRate = meanOver(rows, func(r monthlyRow) float64 { return r.rates[0] })
	m.NewRate = meanOver(rows, func(r monthlyRow) float64 { return r.rates[1] })
	m.ResidentRate = meanOver(rows, func(r monthlyRow) float64 { return r.rates[2] })
	m.WorkplaceRate = meanOver(rows, func(r monthlyRow) float64 { return r.rates[3] })
	m.FloatingRate = meanOver(rows, func(r monthlyRow) float64 { return r.rates[4] })
	m.DeliveryRate = meanOver(rows, func(r monthlyRow) float64 { return r.rates[5] })

	m.PersonaShares = make([]domain.SegmentShare, 0, len(personaColumns))
	for i, pc := range personaColumns {
		share := domain.SegmentShare{Band: pc.band}
		if v := latest.personas[i]; !math.IsNaN(v) {
			share.Share = v
			share.Known = true
		}
		m.PersonaShares = append(m.PersonaShares, share)
	}

	return m
}

// meanOver averages the picked value over all rows, skipping NaN. It returns
// NaN when no row carried a value.
func meanOver(rows []monthlyRow, pick func(monthlyRow) float64) float64 {
	var sum float64
	var n int
	for _, r := range rows {
		v := pick(r)
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

func (s *Store) loadTemplates(src Source) error {
	t, err := readTable(src, FileStrategyTemplates)
	if err != nil {
		return &LoadError{Table: FileStrategyTemplates, Err: err}
	}

	if err := t.require(colTemplateArea, colTemplateCategory, colTemplateFactor, colTemplateStrategy); err != nil {
		return &LoadError{Table: FileStrategyTemplates, Err: err}
	}

	for _, row := range t.rows {
		tpl := domain.StrategyTemplate{
			CommercialArea: t.text(row, colTemplateArea),
			Category:       t.text(row, colTemplateCategory),
			KeyFactor:      t.text(row, colTemplateFactor),
			Strategy:       t.text(row, colTemplateStrategy),
			Importance:     t.number(row, colTemplateImportance),
		}
		if tpl.Category == "" || tpl.Strategy == "" {
			continue
		}
		s.templates = append(s.templates, tpl)
	}

	if len(s.templates) == 0 {
		return &LoadError{Table: FileStrategyTemplates, Err: errors.New("no usable rows")}
	}

	return nil
}

type flowColumn struct {
	name  string
	label string
}

func bandFlowColumns() []flowColumn {
	cols := make([]flowColumn, 0, len(genderAgeColumns))
	for _, c := range genderAgeColumns {
		cols = append(cols, flowColumn{name: c.col, label: string(c.band)})
	}
	return cols
}

func rawFlowColumns(names []string) []flowColumn {
	cols := make([]flowColumn, 0, len(names))
	for _, n := range names {
		cols = append(cols, flowColumn{name: n, label: n})
	}
	return cols
}

func (s *Store) loadFlows(src Source) error {
	files := []struct {
		file     string
		scope    domain.FlowScope
		dim      domain.FlowDimension
		columns  []flowColumn
		optional bool
	}{
		{FileFlowGenderAge, domain.ScopeAreaWide, domain.DimGenderAge, bandFlowColumns(), false},
		{FileFlowGenderAgeSel, domain.ScopeSelected, domain.DimGenderAge, bandFlowColumns(), true},
		{FileFlowDayOfWeek, domain.ScopeAreaWide, domain.DimDayOfWeek, rawFlowColumns(dayColumns), false},
		{FileFlowDayOfWeekSel, domain.ScopeSelected, domain.DimDayOfWeek, rawFlowColumns(dayColumns), true},
		{FileFlowTimeBand, domain.ScopeAreaWide, domain.DimTimeBand, rawFlowColumns(timeBandColumns), false},
		{FileFlowTimeBandSel, domain.ScopeSelected, domain.DimTimeBand, rawFlowColumns(timeBandColumns), true},
	}

	for _, f := range files {
		entries, err := loadPopulationRow(src, f.file, f.columns)
		if err != nil {
			if f.optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return &LoadError{Table: f.file, Err: err}
		}
		s.flows[flowKey{scope: f.scope, dim: f.dim}] = domain.FlowSlice{
			Scope:     f.scope,
			Dimension: f.dim,
			Entries:   entries,
		}
	}

	return nil
}

func (s *Store) loadWorkforce(src Source) error {
	entries, err := loadPopulationRow(src, FileWorkforce, bandFlowColumns())
	if err != nil {
		return &LoadError{Table: FileWorkforce, Err: err}
	}

	s.workforce[domain.ScopeAreaWide] = domain.WorkforceSlice{
		Scope:   domain.ScopeAreaWide,
		Entries: entries,
	}

	return nil
}

// loadPopulationRow reads a population table and extracts the counts of the
// first row whose 구분 mentions 인구.
func loadPopulationRow(src Source, file string, columns []flowColumn) ([]domain.FlowEntry, error) {
	t, err := readTable(src, file)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(columns)+1)
	names = append(names, colGroup)
	for _, c := range columns {
		names = append(names, c.name)
	}
	if err := t.require(names...); err != nil {
		return nil, err
	}

	var row []string
	for _, r := range t.rows {
		if strings.Contains(t.cell(r, colGroup), "인구") {
			row = r
			break
		}
	}
	if row == nil {
		return nil, errors.New("no population row")
	}

	entries := make([]domain.FlowEntry, 0, len(columns))
	for _, c := range columns {
		count := t.number(row, c.name)
		if math.IsNaN(count) {
			count = 0
		}
		entries = append(entries, domain.FlowEntry{Label: c.label, Count: count})
	}

	return entries, nil
}
