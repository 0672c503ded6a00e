package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	applog "fangji/internal/log"
)

// OpenDB opens the SQLite database at dsn, applies migrations and the symptoms
// upgrade, and seeds the sample prescriptions when the schema was created just now.
func OpenDB(dsn string, seed bool) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: SQLite serialises writers and ":memory:" is per-connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	existed, err := tableExists(db, "prescriptions")
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := RunMigrations(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSymptoms(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if !existed && seed {
		if err := seedSamples(db, systemClock{}); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func tableExists(db *sqlx.DB, name string) (bool, error) {
	var n int
	err := db.Get(&n, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name)
	return n > 0, err
}

// ensureSymptoms adds the symptoms column and its index to databases created
// before the column existed. Safe to run on every startup.
func ensureSymptoms(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM pragma_table_info('prescriptions') WHERE name = 'symptoms'`); err != nil {
		return fmt.Errorf("inspect prescriptions: %w", err)
	}
	if n == 0 {
		if _, err := db.Exec(`ALTER TABLE prescriptions ADD COLUMN symptoms TEXT`); err != nil {
			return fmt.Errorf("add symptoms column: %w", err)
		}
		applog.L().Info("added symptoms column")
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_symptoms ON prescriptions(symptoms)`); err != nil {
		return fmt.Errorf("create symptoms index: %w", err)
	}
	return nil
}

type sample struct {
	Name, Efficacy, Ingredients, Usage, Precautions, Category, Source string
}

var samples = []sample{
	{
		Name:        "银翘散",
		Efficacy:    "清热解毒，辛凉透表，宣肺止咳",
		Ingredients: "金银花、连翘、桔梗、薄荷、竹叶、生甘草、荆芥穗、淡豆豉、牛蒡子",
		Usage:       "水煎服，每日1剂，分2-3次温服",
		Precautions: "忌辛辣油腻，风寒感冒忌用",
		Category:    "清热解毒类",
		Source:      "《温病条辨》",
	},
	{
		Name:        "六味地黄丸",
		Efficacy:    "滋阴补肾，养肝明目，强筋骨",
		Ingredients: "熟地黄、山茱萸、山药、泽泻、茯苓、牡丹皮",
		Usage:       "口服，每次8丸，每日2次",
		Precautions: "忌食辛辣，脾虚便溏者慎用",
		Category:    "滋阴补肾类",
		Source:      "《小儿药证直诀》",
	},
	{
		Name:        "四君子汤",
		Efficacy:    "益气健脾，补中益气，脾胃虚弱",
		Ingredients: "人参、白术、茯苓、炙甘草",
		Usage:       "水煎服，每日1剂，分2次服",
		Precautions: "阴虚火旺者慎用",
		Category:    "补益类",
		Source:      "《太平惠民和剂局方》",
	},
	{
		Name:        "血府逐瘀汤",
		Efficacy:    "活血化瘀，行气止痛，胸中血瘀",
		Ingredients: "桃仁、红花、当归、生地黄、川芎、赤芍、牛膝、桔梗、柴胡、枳壳、甘草",
		Usage:       "水煎服，每日1剂，分2次服",
		Precautions: "孕妇忌用，月经过多者慎用",
		Category:    "活血化瘀类",
		Source:      "《医林改错》",
	},
	{
		Name:        "小柴胡汤",
		Efficacy:    "和解少阳，疏肝解郁，调和脾胃",
		Ingredients: "柴胡、黄芩、半夏、人参、甘草、生姜、大枣",
		Usage:       "水煎服，每日1剂，分3次服",
		Precautions: "肝阳上亢者慎用",
		Category:    "和解类",
		Source:      "《伤寒论》",
	},
}

// seedSamples inserts the sample prescriptions. Symptoms stay NULL, as on a
// database created before the column existed.
func seedSamples(db *sqlx.DB, clock Clock) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := stamp(clock)
	for _, s := range samples {
		if _, err := tx.Exec(`
			INSERT INTO prescriptions(name, efficacy, ingredients, usage, precautions, category, source, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, s.Name, s.Efficacy, s.Ingredients, s.Usage, s.Precautions, s.Category, s.Source, now, now); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	applog.L().Info("seeded sample prescriptions", zap.Int("count", len(samples)))
	return nil
}
