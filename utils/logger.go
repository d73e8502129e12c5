package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// BuildLogger представляет логгер для процесса сборки хранилища
type BuildLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	isVerbose   bool
}

// NewBuildLogger создает новый экземпляр логгера для сборки хранилища
func NewBuildLogger(verbose bool) *BuildLogger {
	// Создаем или открываем лог-файл для записи
	currentTime := time.Now().Format("2006-01-02")
	logFileName := fmt.Sprintf("warehouse_build_%s.log", currentTime)

	var out io.Writer
	file, err := os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		// Если файл недоступен (например, каталог только для чтения),
		// пишем только в стандартный вывод
		log.Printf("Не удалось открыть файл лога %s: %v. Логи пишутся только в stdout", logFileName, err)
		out = io.Discard
	} else {
		out = file
	}

	// Инициализируем логгеры для разных уровней
	infoLogger := log.New(out, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	errorLogger := log.New(out, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	debugLogger := log.New(out, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

	return &BuildLogger{
		infoLogger:  infoLogger,
		errorLogger: errorLogger,
		debugLogger: debugLogger,
		isVerbose:   verbose,
	}
}

// Info логирует информационное сообщение
func (l *BuildLogger) Info(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.infoLogger.Println(msg)

	// Также выводим в стандартный вывод
	log.Println("INFO:", msg)
}

// Error логирует сообщение об ошибке
func (l *BuildLogger) Error(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.errorLogger.Println(msg)

	// Также выводим в стандартный вывод
	log.Println("ERROR:", msg)
}

// Debug логирует отладочное сообщение (только если включен verbose режим)
func (l *BuildLogger) Debug(format string, v ...interface{}) {
	if !l.isVerbose {
		return
	}

	msg := fmt.Sprintf(format, v...)
	l.debugLogger.Println(msg)

	// Также выводим в стандартный вывод
	log.Println("DEBUG:", msg)
}

// LogBuildStart логирует начало сборки хранилища
func (l *BuildLogger) LogBuildStart(runID string) {
	l.Info("Начало сборки хранилища. Запуск: %s", runID)
}

// LogBuildComplete логирует завершение сборки хранилища
func (l *BuildLogger) LogBuildComplete(startTime time.Time, customers, products, facts int) {
	duration := time.Since(startTime)
	l.Info("Сборка хранилища завершена. Длительность: %v", duration)
	l.Info("Загружено: %d клиентов, %d товаров, %d фактов заказов", customers, products, facts)
}
