package migrate

import (
	"context"
	"shop-service/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateChecks           bool // CHECK-constraint для инвариантов склада и статусов
	CreateIndexes          bool // функциональные и составные индексы
	CreateFKsViaSQL        bool // FK через SQL (поверх GORM-constraint)
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
}

// DefaultMigrateOptions: полный набор для postgres.
func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

// TablesOnlyOptions: только AutoMigrate, для sqlite в тестах.
func TablesOnlyOptions() MigrateOptions { return MigrateOptions{} }

type step struct {
	name string
	sql  string
}

var checkSteps = []step{
	{"chk_products_stock_non_negative", `
ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_stock_non_negative;
ALTER TABLE products ADD CONSTRAINT chk_products_stock_non_negative CHECK (stock >= 0);`},
	{"chk_products_sold_non_negative", `
ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_sold_non_negative;
ALTER TABLE products ADD CONSTRAINT chk_products_sold_non_negative CHECK (sold >= 0);`},
	{"chk_products_price_non_negative", `
ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_price_non_negative;
ALTER TABLE products ADD CONSTRAINT chk_products_price_non_negative CHECK (price >= 0);`},
	{"chk_products_rating_range", `
ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_rating_range;
ALTER TABLE products ADD CONSTRAINT chk_products_rating_range CHECK (rating BETWEEN 0 AND 5 AND rating_count >= 0);`},
	{"chk_cart_items_quantity_gt_zero", `
ALTER TABLE cart_items DROP CONSTRAINT IF EXISTS chk_cart_items_quantity_gt_zero;
ALTER TABLE cart_items ADD CONSTRAINT chk_cart_items_quantity_gt_zero CHECK (quantity > 0);`},
	{"chk_orders_status_allowed", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('pending','confirmed','processing','shipped','completed','cancelled'));`},
	{"chk_orders_total_non_negative", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_total_non_negative;
ALTER TABLE orders ADD CONSTRAINT chk_orders_total_non_negative CHECK (total_amount >= 0);`},
	{"chk_order_items_quantity_gt_zero", `
ALTER TABLE order_items DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items ADD CONSTRAINT chk_order_items_quantity_gt_zero CHECK (quantity > 0);`},
	{"chk_order_items_price_non_negative", `
ALTER TABLE order_items DROP CONSTRAINT IF EXISTS chk_order_items_price_non_negative;
ALTER TABLE order_items ADD CONSTRAINT chk_order_items_price_non_negative CHECK (price_at_time >= 0);`},
	{"chk_product_ratings_range", `
ALTER TABLE product_ratings DROP CONSTRAINT IF EXISTS chk_product_ratings_range;
ALTER TABLE product_ratings ADD CONSTRAINT chk_product_ratings_range CHECK (rating BETWEEN 1 AND 5);`},
	{"chk_consultations_status_allowed", `
ALTER TABLE consultations DROP CONSTRAINT IF EXISTS chk_consultations_status_allowed;
ALTER TABLE consultations ADD CONSTRAINT chk_consultations_status_allowed
  CHECK (status IN ('pending','confirmed','in_progress','completed','cancelled'));`},
}

var indexSteps = []step{
	// email сравниваем без учёта регистра
	{"ux_users_email_lower", `CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email_lower ON users (lower(email));`},
	{"ix_orders_user_created", `CREATE INDEX IF NOT EXISTS ix_orders_user_created ON orders (user_id, created_at DESC);`},
	{"ix_products_category_name", `CREATE INDEX IF NOT EXISTS ix_products_category_name ON products (category, name);`},
	{"ix_consultations_user_created", `CREATE INDEX IF NOT EXISTS ix_consultations_user_created ON consultations (user_id, created_at DESC);`},
}

var fkSteps = []step{
	{"fk_cart_items_user", `
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS fk_cart_items_user,
  ADD CONSTRAINT fk_cart_items_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE;`},
	{"fk_cart_items_product", `
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS fk_cart_items_product,
  ADD CONSTRAINT fk_cart_items_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;`},
	{"fk_orders_user", `
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS fk_orders_user,
  ADD CONSTRAINT fk_orders_user FOREIGN KEY (user_id) REFERENCES users(id);`},
	{"fk_order_items_product", `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_product,
  ADD CONSTRAINT fk_order_items_product FOREIGN KEY (product_id) REFERENCES products(id);`},
	{"fk_product_ratings_user", `
ALTER TABLE product_ratings
  DROP CONSTRAINT IF EXISTS fk_product_ratings_user,
  ADD CONSTRAINT fk_product_ratings_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE;`},
	{"fk_product_ratings_product", `
ALTER TABLE product_ratings
  DROP CONSTRAINT IF EXISTS fk_product_ratings_product,
  ADD CONSTRAINT fk_product_ratings_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;`},
	{"fk_product_ratings_order", `
ALTER TABLE product_ratings
  DROP CONSTRAINT IF EXISTS fk_product_ratings_order,
  ADD CONSTRAINT fk_product_ratings_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;`},
	{"fk_password_reset_tokens_user", `
ALTER TABLE password_reset_tokens
  DROP CONSTRAINT IF EXISTS fk_password_reset_tokens_user,
  ADD CONSTRAINT fk_password_reset_tokens_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE;`},
	{"fk_consultations_user", `
ALTER TABLE consultations
  DROP CONSTRAINT IF EXISTS fk_consultations_user,
  ADD CONSTRAINT fk_consultations_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE;`},
}

var updatedAtTables = []string{"users", "products", "cart_items", "orders", "consultations"}

func runSteps(db *gorm.DB, log *zap.Logger, steps []step) error {
	for _, s := range steps {
		if err := db.Exec(s.sql).Error; err != nil {
			log.Error("Не удалось применить шаг миграции", zap.String("step", s.name), zap.Error(err))
			return err
		}
	}
	return nil
}

func MigrateShopDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных магазина")
	db = db.WithContext(ctx)

	log.Info("Создание таблиц")
	if err := db.AutoMigrate(
		&models.User{},
		&models.PasswordResetToken{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.ProductRating{},
		&models.Service{},
		&models.ConsultationType{},
		&models.DesignCategory{},
		&models.DesignStyle{},
		&models.Consultation{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}
	log.Info("Таблицы успешно созданы")

	if opt.CreateUpdatedAtTrigger {
		log.Info("Создание триггеров updated_at")
		if err := db.Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;
`).Error; err != nil {
			log.Error("Не удалось создать функцию set_updated_at", zap.Error(err))
			return err
		}
		for _, table := range updatedAtTables {
			trg := "trg_" + table + "_updated"
			if err := db.Exec(`DROP TRIGGER IF EXISTS ` + trg + ` ON ` + table + `;
CREATE TRIGGER ` + trg + ` BEFORE UPDATE ON ` + table + ` FOR EACH ROW EXECUTE FUNCTION set_updated_at();`).Error; err != nil {
				log.Error("Не удалось создать триггер updated_at", zap.String("table", table), zap.Error(err))
				return err
			}
		}
		log.Info("Триггеры updated_at успешно созданы")
	}

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")
		if err := runSteps(db, log, checkSteps); err != nil {
			return err
		}
		log.Info("CHECK-ограничения успешно созданы")
	}

	if opt.CreateIndexes {
		log.Info("Создание индексов")
		if err := runSteps(db, log, indexSteps); err != nil {
			return err
		}
		log.Info("Индексы успешно созданы")
	}

	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")
		if err := runSteps(db, log, fkSteps); err != nil {
			return err
		}
		log.Info("Внешние ключи успешно созданы")
	}

	log.Info("Миграция базы данных магазина успешно завершена")
	return nil
}
