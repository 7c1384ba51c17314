package ui

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeySourceFolder       = "source_folder"
	KeyDestFolder         = "dest_folder"
	KeySelectSource       = "select_source"
	KeySelectDest         = "select_dest"
	KeyBrowse             = "browse"
	KeyDeleteOriginals    = "delete_originals"
	KeyConfigLocation     = "config_location"
	KeyStartMerge         = "start_merge"
	KeyCancel             = "cancel"
	KeyProgress           = "progress"
	KeyStatus             = "status"
	KeyReady              = "ready"
	KeyProcessing         = "processing"
	KeyComplete           = "complete"
	KeyCancelled          = "cancelled"
	KeyCancelling         = "cancelling"
	KeyNoPairs            = "no_pairs"
	KeyFoundPairs         = "found_pairs"
	KeyMergeFailed        = "merge_failed"
	KeyMerged             = "merged"
	KeyMergedDeleted      = "merged_deleted"
	KeyDeleteWarning      = "delete_warning"
	KeySkipped            = "skipped"
	KeyCloseWhileRunning  = "close_while_running"
	KeyFailedFiles        = "failed_files"
	KeyErrorTitle         = "error_title"
	KeyErrSourceMissing   = "err_source_missing"
	KeyErrDestMissing     = "err_dest_missing"
	KeyErrToolMissing     = "err_tool_missing"
	KeyErrAlreadyRunning  = "err_already_running"
	KeyErrSameDirectory   = "err_same_directory"
	KeyConfirmDeleteTitle = "confirm_delete_title"
	KeyConfirmDeleteBody  = "confirm_delete_body"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyAutoReveal         = "auto_reveal"
	KeyConfirmDelete      = "confirm_delete"
	KeySave               = "save"
	KeySettingsSaved      = "settings_saved"
	KeyErrorOpeningFile   = "error_opening_file"
	KeyConfigNotSaved     = "config_not_saved"
	KeyConfigCorrupt      = "config_corrupt"
	KeyFolderForgotten    = "folder_forgotten"
)

// fallbackLanguage is used when neither the chosen nor the system language has a text
const fallbackLanguage = "en"

// supportedTags lists the languages with translations, fallback first
var supportedTags = []language.Tag{
	language.English,
	language.Russian,
	language.Portuguese,
}

var languageMatcher = language.NewMatcher(supportedTags)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: fallbackLanguage,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" resolves the OS locale.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = SystemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[fallbackLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// SystemLanguage returns the supported language closest to the OS locale
func SystemLanguage() string {
	return MatchLanguage(localeFromEnv())
}

// MatchLanguage maps a POSIX or BCP 47 locale like "pt_BR.UTF-8" to a supported code
func MatchLanguage(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return fallbackLanguage
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return fallbackLanguage
	}

	_, index, confidence := languageMatcher.Match(tag)
	if confidence == language.No {
		return fallbackLanguage
	}
	base, _ := supportedTags[index].Base()
	return base.String()
}

func localeFromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "Merge Replays",
		KeySourceFolder:       "Source Folder (MP4 + M4A files)",
		KeyDestFolder:         "Destination Folder",
		KeySelectSource:       "Please select a source folder",
		KeySelectDest:         "Please select a destination folder",
		KeyBrowse:             "Browse",
		KeyDeleteOriginals:    "Delete original files after successful merge",
		KeyConfigLocation:     "Config saved to:",
		KeyStartMerge:         "Start Merge",
		KeyCancel:             "Cancel",
		KeyProgress:           "Progress",
		KeyStatus:             "Status Log",
		KeyReady:              "Ready",
		KeyProcessing:         "Processing %d/%d: %s",
		KeyComplete:           "Complete! %d/%d files merged successfully.",
		KeyCancelled:          "Cancelled after %d/%d files.",
		KeyCancelling:         "Cancelling after the current file...",
		KeyNoPairs:            "No matching MP4/M4A file pairs found in source folder",
		KeyFoundPairs:         "Found %d file pair(s) to merge",
		KeyMergeFailed:        "Failed to merge %s: %s",
		KeyMerged:             "Merged %s",
		KeyMergedDeleted:      "Merged %s and deleted original files",
		KeyDeleteWarning:      "Merged %s, but could not delete originals: %s",
		KeySkipped:            "Skipped %s (cancelled)",
		KeyCloseWhileRunning:  "A merge is running. Stop after the current file and close?",
		KeyFailedFiles:        "Failed files: %s",
		KeyErrorTitle:         "Error",
		KeyErrSourceMissing:   "Source folder does not exist",
		KeyErrDestMissing:     "Destination folder does not exist",
		KeyErrToolMissing:     "FFmpeg is not installed or not in PATH.\nPlease install FFmpeg to use this tool.",
		KeyErrAlreadyRunning:  "A merge is already running",
		KeyErrSameDirectory:   "Source and destination must be different folders",
		KeyConfirmDeleteTitle: "Delete originals?",
		KeyConfirmDeleteBody:  "Original MP4 and M4A files will be deleted after each successful merge. Continue?",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyAutoReveal:         "Open destination folder when finished",
		KeyConfirmDelete:      "Ask before deleting originals",
		KeySave:               "Save",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyErrorOpeningFile:   "Error opening file",
		KeyConfigNotSaved:     "Could not save config",
		KeyConfigCorrupt:      "Config file was unreadable, using defaults",
		KeyFolderForgotten:    "Saved folder no longer exists: %s",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Склейка повторов",
		KeySourceFolder:       "Исходная папка (файлы MP4 + M4A)",
		KeyDestFolder:         "Папка назначения",
		KeySelectSource:       "Выберите исходную папку",
		KeySelectDest:         "Выберите папку назначения",
		KeyBrowse:             "Обзор",
		KeyDeleteOriginals:    "Удалять исходные файлы после успешной склейки",
		KeyConfigLocation:     "Настройки сохранены в:",
		KeyStartMerge:         "Начать склейку",
		KeyCancel:             "Отмена",
		KeyProgress:           "Прогресс",
		KeyStatus:             "Журнал",
		KeyReady:              "Готово к работе",
		KeyProcessing:         "Обработка %d/%d: %s",
		KeyComplete:           "Готово! Успешно склеено файлов: %d/%d.",
		KeyCancelled:          "Отменено после %d/%d файлов.",
		KeyCancelling:         "Отмена после текущего файла...",
		KeyNoPairs:            "В исходной папке нет пар файлов MP4/M4A",
		KeyFoundPairs:         "Найдено пар файлов: %d",
		KeyMergeFailed:        "Не удалось склеить %s: %s",
		KeyMerged:             "Склеено: %s",
		KeyMergedDeleted:      "Склеено: %s, исходные файлы удалены",
		KeyDeleteWarning:      "Склеено: %s, но исходные файлы не удалены: %s",
		KeySkipped:            "Пропущено: %s (отменено)",
		KeyCloseWhileRunning:  "Идёт склейка. Остановить после текущего файла и закрыть?",
		KeyFailedFiles:        "Ошибки: %s",
		KeyErrorTitle:         "Ошибка",
		KeyErrSourceMissing:   "Исходная папка не существует",
		KeyErrDestMissing:     "Папка назначения не существует",
		KeyErrToolMissing:     "FFmpeg не установлен или не найден в PATH.\nУстановите FFmpeg, чтобы пользоваться программой.",
		KeyErrAlreadyRunning:  "Склейка уже выполняется",
		KeyErrSameDirectory:   "Исходная папка и папка назначения должны различаться",
		KeyConfirmDeleteTitle: "Удалить исходные файлы?",
		KeyConfirmDeleteBody:  "Исходные файлы MP4 и M4A будут удалены после каждой успешной склейки. Продолжить?",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyAutoReveal:         "Открыть папку назначения по завершении",
		KeyConfirmDelete:      "Спрашивать перед удалением исходных файлов",
		KeySave:               "Сохранить",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyErrorOpeningFile:   "Ошибка открытия файла",
		KeyConfigNotSaved:     "Не удалось сохранить настройки",
		KeyConfigCorrupt:      "Файл настроек повреждён, используются значения по умолчанию",
		KeyFolderForgotten:    "Сохранённая папка больше не существует: %s",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "Mesclar Replays",
		KeySourceFolder:       "Pasta de Origem (arquivos MP4 + M4A)",
		KeyDestFolder:         "Pasta de Destino",
		KeySelectSource:       "Selecione uma pasta de origem",
		KeySelectDest:         "Selecione uma pasta de destino",
		KeyBrowse:             "Navegar",
		KeyDeleteOriginals:    "Excluir arquivos originais após mesclagem bem-sucedida",
		KeyConfigLocation:     "Configuração salva em:",
		KeyStartMerge:         "Iniciar Mesclagem",
		KeyCancel:             "Cancelar",
		KeyProgress:           "Progresso",
		KeyStatus:             "Registro",
		KeyReady:              "Pronto",
		KeyProcessing:         "Processando %d/%d: %s",
		KeyComplete:           "Concluído! %d/%d arquivos mesclados com sucesso.",
		KeyCancelled:          "Cancelado após %d/%d arquivos.",
		KeyCancelling:         "Cancelando após o arquivo atual...",
		KeyNoPairs:            "Nenhum par de arquivos MP4/M4A encontrado na pasta de origem",
		KeyFoundPairs:         "%d par(es) de arquivos para mesclar",
		KeyMergeFailed:        "Falha ao mesclar %s: %s",
		KeyMerged:             "Mesclado %s",
		KeyMergedDeleted:      "Mesclado %s e originais excluídos",
		KeyDeleteWarning:      "Mesclado %s, mas não foi possível excluir os originais: %s",
		KeySkipped:            "Ignorado %s (cancelado)",
		KeyCloseWhileRunning:  "Uma mesclagem está em andamento. Parar após o arquivo atual e fechar?",
		KeyFailedFiles:        "Arquivos com falha: %s",
		KeyErrorTitle:         "Erro",
		KeyErrSourceMissing:   "A pasta de origem não existe",
		KeyErrDestMissing:     "A pasta de destino não existe",
		KeyErrToolMissing:     "FFmpeg não está instalado ou não está no PATH.\nInstale o FFmpeg para usar esta ferramenta.",
		KeyErrAlreadyRunning:  "Uma mesclagem já está em andamento",
		KeyErrSameDirectory:   "Origem e destino devem ser pastas diferentes",
		KeyConfirmDeleteTitle: "Excluir originais?",
		KeyConfirmDeleteBody:  "Os arquivos MP4 e M4A originais serão excluídos após cada mesclagem bem-sucedida. Continuar?",
		KeySettings:           "Configurações",
		KeyFile:               "Arquivo",
		KeyLanguage:           "Idioma",
		KeyAutoReveal:         "Abrir pasta de destino ao concluir",
		KeyConfirmDelete:      "Perguntar antes de excluir originais",
		KeySave:               "Salvar",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeyErrorOpeningFile:   "Erro ao abrir arquivo",
		KeyConfigNotSaved:     "Não foi possível salvar a configuração",
		KeyConfigCorrupt:      "Arquivo de configuração ilegível, usando padrões",
		KeyFolderForgotten:    "A pasta salva não existe mais: %s",
	}
}
