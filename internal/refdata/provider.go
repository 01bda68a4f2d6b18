package refdata

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	tagsFile       = "unique_tags.json"
	companiesFile  = "companies.json"
	subsectorsFile = "subsectors_data.json"
)

// refreshDays are the days of the month on which reference data is
// re-pulled from Postgres instead of served from the local snapshots.
var refreshDays = map[int]bool{1: true, 15: true}

type Company struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Subsector string `json:"sub_sector"`
}

// Tables holds the three closed vocabularies used to constrain model
// output: valid tags, listed companies keyed by ticker symbol, and
// subsector slugs with their descriptions.
type Tables struct {
	Tags       []string
	Companies  map[string]Company
	Subsectors map[string]string
}

func (t *Tables) TagSet() map[string]struct{} {
	set := make(map[string]struct{}, len(t.Tags))
	for _, tag := range t.Tags {
		set[tag] = struct{}{}
	}
	return set
}

func (t *Tables) Symbols() []string {
	symbols := make([]string, 0, len(t.Companies))
	for symbol := range t.Companies {
		symbols = append(symbols, symbol)
	}
	return symbols
}

func (t *Tables) SubsectorSlugs() []string {
	slugs := make([]string, 0, len(t.Subsectors))
	for slug := range t.Subsectors {
		slugs = append(slugs, slug)
	}
	return slugs
}

// Provider loads the reference tables once and serves them from memory
// for the rest of the process lifetime.
type Provider struct {
	db     *sql.DB
	dir    string
	now    func() time.Time
	tables *Tables
}

func NewProvider(db *sql.DB, dataDir string) *Provider {
	return &Provider{db: db, dir: dataDir, now: time.Now}
}

// Tables returns the cached vocabularies, loading them on first use.
func (p *Provider) Tables() (*Tables, error) {
	if p.tables != nil {
		return p.tables, nil
	}

	tags, err := p.loadTags()
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}

	refresh := refreshDays[p.now().Day()] && p.db != nil

	subsectors, err := p.loadSubsectors(refresh)
	if err != nil {
		return nil, fmt.Errorf("load subsectors: %w", err)
	}

	companies, err := p.loadCompanies(refresh)
	if err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}

	p.tables = &Tables{Tags: tags, Companies: companies, Subsectors: subsectors}
	return p.tables, nil
}

func (p *Provider) loadTags() ([]string, error) {
	var tags []string
	if err := readSnapshot(filepath.Join(p.dir, tagsFile), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (p *Provider) loadSubsectors(refresh bool) (map[string]string, error) {
	path := filepath.Join(p.dir, subsectorsFile)

	if !refresh {
		subsectors := map[string]string{}
		if err := readSnapshot(path, &subsectors); err != nil {
			return nil, err
		}
		return subsectors, nil
	}

	rows, err := p.db.Query(`SELECT slug, description FROM idx_subsector_metadata`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subsectors := map[string]string{}
	for rows.Next() {
		var slug, description string
		if err := rows.Scan(&slug, &description); err != nil {
			return nil, err
		}
		subsectors[slug] = description
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subsectors, writeSnapshot(path, subsectors)
}

func (p *Provider) loadCompanies(refresh bool) (map[string]Company, error) {
	path := filepath.Join(p.dir, companiesFile)

	if !refresh {
		companies := map[string]Company{}
		if err := readSnapshot(path, &companies); err != nil {
			return nil, err
		}
		return companies, nil
	}

	subsectorNames, err := p.subsectorNamesByID()
	if err != nil {
		return nil, err
	}

	rows, err := p.db.Query(`SELECT symbol, company_name, sub_sector_id FROM idx_company_profile`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := map[string]Company{}
	for rows.Next() {
		var symbol, name string
		var subsectorID int64
		if err := rows.Scan(&symbol, &name, &subsectorID); err != nil {
			return nil, err
		}
		companies[symbol] = Company{
			Symbol:    symbol,
			Name:      name,
			Subsector: Slugify(subsectorNames[subsectorID]),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return companies, writeSnapshot(path, companies)
}

func (p *Provider) subsectorNamesByID() (map[int64]string, error) {
	rows, err := p.db.Query(`SELECT sub_sector_id, sub_sector FROM idx_subsector_metadata`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := map[int64]string{}
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

// Slugify converts a subsector label into its slug form: ampersands and
// commas dropped, doubled spaces collapsed, spaces hyphenated, lowercase.
func Slugify(label string) string {
	label = strings.ReplaceAll(label, "&", "")
	label = strings.ReplaceAll(label, ",", "")
	label = strings.ReplaceAll(label, "  ", " ")
	label = strings.ReplaceAll(label, " ", "-")
	return strings.ToLower(label)
}

func readSnapshot(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func writeSnapshot(path string, in any) error {
	raw, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
