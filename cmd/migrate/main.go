// Command migrate copies the legacy SQLite reference tables into the
// spreadsheet, one worksheet per table. Existing worksheets are cleared and
// rewritten; it is safe to rerun.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/sheetstore"
	"github.com/yungbote/skillbridge-backend/internal/utils"
)

type groupRow struct {
	ID          int     `gorm:"column:id"`
	Name        string  `gorm:"column:name"`
	SubCategory *string `gorm:"column:sub_category"`
}

type competencyRow struct {
	ID          int     `gorm:"column:id"`
	GroupID     int     `gorm:"column:group_id"`
	Name        string  `gorm:"column:name"`
	Description *string `gorm:"column:description"`
}

type scenarioRow struct {
	ID        int    `gorm:"column:id"`
	GroupID   int    `gorm:"column:group_id"`
	Situation string `gorm:"column:situation"`
}

type scenarioCompetencyRow struct {
	ID           int `gorm:"column:id"`
	ScenarioID   int `gorm:"column:scenario_id"`
	CompetencyID int `gorm:"column:competency_id"`
}

type courseRow struct {
	ID            int     `gorm:"column:id"`
	CompetencyID  int     `gorm:"column:competency_id"`
	Name          string  `gorm:"column:name"`
	Description   *string `gorm:"column:description"`
	DurationHours *int    `gorm:"column:duration_hours"`
	Semester      *string `gorm:"column:semester"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "migrate failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	dbPath := utils.GetEnv("REFERENCE_DB_PATH", "database.db", log)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open sqlite database %s: %w", dbPath, err)
	}

	ctx := context.Background()
	client, err := sheetstore.NewClient(ctx, log, 0)
	if err != nil {
		return fmt.Errorf("init sheets client: %w", err)
	}

	log.Info("Starting SQLite to Sheets migration", "db", dbPath)

	if err := migrateGroups(ctx, db, client, log); err != nil {
		return err
	}
	if err := migrateCompetencies(ctx, db, client, log); err != nil {
		return err
	}
	if err := migrateScenarios(ctx, db, client, log); err != nil {
		return err
	}
	if err := migrateScenarioCompetencies(ctx, db, client, log); err != nil {
		return err
	}
	if err := migrateCourses(ctx, db, client, log); err != nil {
		return err
	}

	log.Info("Migration complete")
	return nil
}

func writeTable(ctx context.Context, client *sheetstore.Client, log *logger.Logger, table string, headers []string, rows [][]interface{}) error {
	if err := client.EnsureTable(ctx, table, headers); err != nil {
		return fmt.Errorf("prepare worksheet %s: %w", table, err)
	}
	if err := client.AppendRows(ctx, table, rows); err != nil {
		return fmt.Errorf("write worksheet %s: %w", table, err)
	}
	log.Info("Migrated table", "table", table, "rows", len(rows))
	return nil
}

func strOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func intOr(n *int, fallback int) int {
	if n == nil {
		return fallback
	}
	return *n
}

func migrateGroups(ctx context.Context, db *gorm.DB, client *sheetstore.Client, log *logger.Logger) error {
	var rows []groupRow
	if err := db.Raw("SELECT id, name, sub_category FROM competency_groups ORDER BY id").Scan(&rows).Error; err != nil {
		return fmt.Errorf("read competency_groups: %w", err)
	}
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.ID, r.Name, strOr(r.SubCategory, "")})
	}
	return writeTable(ctx, client, log, "competency_groups", []string{"id", "name", "sub_category"}, data)
}

func migrateCompetencies(ctx context.Context, db *gorm.DB, client *sheetstore.Client, log *logger.Logger) error {
	var rows []competencyRow
	if err := db.Raw("SELECT id, group_id, name, description FROM competencies ORDER BY id").Scan(&rows).Error; err != nil {
		return fmt.Errorf("read competencies: %w", err)
	}
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.ID, r.GroupID, r.Name, strOr(r.Description, "")})
	}
	return writeTable(ctx, client, log, "competencies", []string{"id", "group_id", "name", "description"}, data)
}

func migrateScenarios(ctx context.Context, db *gorm.DB, client *sheetstore.Client, log *logger.Logger) error {
	var rows []scenarioRow
	if err := db.Raw("SELECT id, group_id, situation FROM scenarios ORDER BY id").Scan(&rows).Error; err != nil {
		return fmt.Errorf("read scenarios: %w", err)
	}
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.ID, r.GroupID, r.Situation})
	}
	return writeTable(ctx, client, log, "scenarios", []string{"id", "group_id", "situation"}, data)
}

func migrateScenarioCompetencies(ctx context.Context, db *gorm.DB, client *sheetstore.Client, log *logger.Logger) error {
	var rows []scenarioCompetencyRow
	if err := db.Raw("SELECT id, scenario_id, competency_id FROM scenario_competencies ORDER BY id").Scan(&rows).Error; err != nil {
		return fmt.Errorf("read scenario_competencies: %w", err)
	}
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.ID, r.ScenarioID, r.CompetencyID})
	}
	return writeTable(ctx, client, log, "scenario_competencies", []string{"id", "scenario_id", "competency_id"}, data)
}

func migrateCourses(ctx context.Context, db *gorm.DB, client *sheetstore.Client, log *logger.Logger) error {
	var rows []courseRow
	if err := db.Raw("SELECT id, competency_id, name, description, duration_hours, semester FROM courses ORDER BY id").Scan(&rows).Error; err != nil {
		return fmt.Errorf("read courses: %w", err)
	}
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{
			r.ID, r.CompetencyID, r.Name, strOr(r.Description, ""), intOr(r.DurationHours, 0), strOr(r.Semester, ""),
		})
	}
	return writeTable(ctx, client, log, "courses", []string{"id", "competency_id", "name", "description", "duration_hours", "semester"}, data)
}
