package load

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_warehouse/utils"
)

// snapshotTable материализует таблицу по схеме "собрать во временную,
// затем атомарно подменить": новое поколение строится в таблице <name>_new,
// после чего выполняется атомарный RENAME TABLE. Читатель в любой момент
// видит либо предыдущее полное поколение, либо новое, но не частичное
type snapshotTable struct {
	db     *sql.DB
	logger *utils.BuildLogger
	name   string
	ddl    string
}

// replace строит новое поколение таблицы и подменяет им текущее
// insert получает транзакцию для вставки строк в таблицу нового поколения
// и возвращает количество вставленных строк
func (t *snapshotTable) replace(insert func(tx *sql.Tx, table string) (int, error)) (int, error) {
	newTable := t.name + "_new"
	oldTable := t.name + "_old"

	// Базовая таблица должна существовать, чтобы RENAME всегда был корректен
	if _, err := t.db.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s %s", t.name, t.ddl)); err != nil {
		return 0, fmt.Errorf("ошибка при создании таблицы %s: %w", t.name, err)
	}

	// Убираем остатки незавершенной предыдущей сборки
	if _, err := t.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", newTable)); err != nil {
		return 0, fmt.Errorf("ошибка при удалении таблицы %s: %w", newTable, err)
	}

	if _, err := t.db.Exec(fmt.Sprintf("CREATE TABLE %s %s", newTable, t.ddl)); err != nil {
		return 0, fmt.Errorf("ошибка при создании таблицы %s: %w", newTable, err)
	}

	// Вставляем строки нового поколения в транзакции
	tx, err := t.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("ошибка при начале транзакции для %s: %w", newTable, err)
	}

	count, err := insert(tx, newTable)
	if err != nil {
		tx.Rollback()
		t.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", newTable))
		return 0, fmt.Errorf("ошибка при загрузке данных в %s: %w", newTable, err)
	}

	if err := tx.Commit(); err != nil {
		t.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", newTable))
		return 0, fmt.Errorf("ошибка при фиксации транзакции для %s: %w", newTable, err)
	}

	// Атомарная подмена поколений
	if _, err := t.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", oldTable)); err != nil {
		return 0, fmt.Errorf("ошибка при удалении таблицы %s: %w", oldTable, err)
	}

	if _, err := t.db.Exec(fmt.Sprintf("RENAME TABLE %s TO %s, %s TO %s",
		t.name, oldTable, newTable, t.name)); err != nil {
		return 0, fmt.Errorf("ошибка при подмене поколений таблицы %s: %w", t.name, err)
	}

	if _, err := t.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", oldTable)); err != nil {
		// Предыдущее поколение уже не видно читателям, поэтому
		// неудачное удаление не считается ошибкой загрузки
		t.logger.Error("Не удалось удалить таблицу %s: %v", oldTable, err)
	}

	t.logger.Debug("Таблица %s подменена новым поколением. Строк: %d", t.name, count)
	return count, nil
}
