package config

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// DBConnections содержит подключения к базам данных
type DBConnections struct {
	SourceDB    *sql.DB
	WarehouseDB *sql.DB
}

// ConnectDatabases устанавливает подключения к транзакционной базе и базе хранилища
func ConnectDatabases(config WarehouseConfig) (*DBConnections, error) {
	var connections DBConnections
	var err error

	// Подключение к транзакционной базе данных (источник)
	sourceDSN := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		config.SourceDB.User,
		config.SourceDB.Password,
		config.SourceDB.Host,
		config.SourceDB.Port,
		config.SourceDB.DBName,
	)

	connections.SourceDB, err = sql.Open(config.SourceDB.Driver, sourceDSN)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к транзакционной базе данных: %w", err)
	}

	// Настройка параметров подключения к источнику
	connections.SourceDB.SetMaxOpenConns(10)
	connections.SourceDB.SetMaxIdleConns(5)
	connections.SourceDB.SetConnMaxLifetime(5 * time.Minute)

	// Проверка подключения к источнику
	if err := connections.SourceDB.Ping(); err != nil {
		return nil, fmt.Errorf("не удалось установить соединение с транзакционной базой данных: %w", err)
	}

	// Подключение к базе данных хранилища (целевая)
	warehouseDSN := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		config.WarehouseDB.User,
		config.WarehouseDB.Password,
		config.WarehouseDB.Host,
		config.WarehouseDB.Port,
		config.WarehouseDB.DBName,
	)

	connections.WarehouseDB, err = sql.Open(config.WarehouseDB.Driver, warehouseDSN)
	if err != nil {
		// Закрываем первое подключение при ошибке
		connections.SourceDB.Close()
		return nil, fmt.Errorf("ошибка подключения к базе данных хранилища: %w", err)
	}

	// Настройка параметров подключения к хранилищу
	connections.WarehouseDB.SetMaxOpenConns(10)
	connections.WarehouseDB.SetMaxIdleConns(5)
	connections.WarehouseDB.SetConnMaxLifetime(5 * time.Minute)

	// Проверка подключения к хранилищу
	if err := connections.WarehouseDB.Ping(); err != nil {
		// Закрываем оба подключения при ошибке
		connections.SourceDB.Close()
		connections.WarehouseDB.Close()
		return nil, fmt.Errorf("не удалось установить соединение с базой данных хранилища: %w", err)
	}

	log.Println("Успешное подключение к транзакционной базе и базе хранилища")
	return &connections, nil
}

// CloseDatabases закрывает подключения к базам данных
func CloseDatabases(connections *DBConnections) {
	if connections.SourceDB != nil {
		if err := connections.SourceDB.Close(); err != nil {
			log.Printf("Ошибка при закрытии соединения с транзакционной базой данных: %v", err)
		}
	}

	if connections.WarehouseDB != nil {
		if err := connections.WarehouseDB.Close(); err != nil {
			log.Printf("Ошибка при закрытии соединения с базой данных хранилища: %v", err)
		}
	}

	log.Println("Соединения с базами данных закрыты")
}
