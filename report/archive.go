package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/snappy"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// Archiver сохраняет отчеты о качестве сборки в сжатом виде
// Каждый отчет пишется в отдельный файл, сжатый snappy
type Archiver struct {
	dir    string
	logger *utils.BuildLogger
}

// NewArchiver создает новый экземпляр Archiver
func NewArchiver(dir string, logger *utils.BuildLogger) *Archiver {
	return &Archiver{
		dir:    dir,
		logger: logger,
	}
}

// Archive сохраняет отчет о сборке и возвращает путь к файлу архива
func (a *Archiver) Archive(report *models.BuildReport) (string, error) {
	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return "", fmt.Errorf("ошибка при создании каталога архива %s: %w", a.dir, err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("ошибка при сериализации отчета: %w", err)
	}

	// Сжимаем отчет перед записью
	compressed := snappy.Encode(nil, data)

	fileName := fmt.Sprintf("build_report_%s_%s.json.snappy",
		report.StartTime.Format("20060102T150405"), report.RunID)
	path := filepath.Join(a.dir, fileName)

	if err := os.WriteFile(path, compressed, 0644); err != nil {
		return "", fmt.Errorf("ошибка при записи архива отчета: %w", err)
	}

	a.logger.Debug("Отчет %s сохранен в %s (%d байт после сжатия)", report.RunID, path, len(compressed))
	return path, nil
}

// Load читает отчет о сборке из файла архива
func (a *Archiver) Load(path string) (*models.BuildReport, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении архива отчета %s: %w", path, err)
	}

	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("ошибка при распаковке архива отчета %s: %w", path, err)
	}

	var report models.BuildReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("ошибка при разборе отчета %s: %w", path, err)
	}

	return &report, nil
}

// Latest возвращает последний сохраненный отчет о сборке
// Возвращает nil без ошибки, если архив пуст
func (a *Archiver) Latest() (*models.BuildReport, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при чтении каталога архива %s: %w", a.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json.snappy") {
			continue
		}
		names = append(names, entry.Name())
	}

	if len(names) == 0 {
		return nil, nil
	}

	// Имена файлов начинаются с метки времени, поэтому лексикографический
	// максимум - самый свежий отчет
	sort.Strings(names)
	return a.Load(filepath.Join(a.dir, names[len(names)-1]))
}
