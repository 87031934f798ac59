package config

import "time"

// Update delivery modes.
const (
	TelegramModeWebhook = "webhook"
	TelegramModePolling = "polling"
)

// Default values for configuration
const (
	DefaultLogLevel = "info"

	DefaultTelegramMode        = TelegramModeWebhook
	DefaultTelegramWebhookPath = "/webhook"
	DefaultTelegramListenAddr  = ":10000"

	DefaultDatabasePath = "ads.db"

	DefaultSessionTTL = 24 * time.Hour

	DefaultListingBatchSize = 100
	DefaultMyAdsLimit       = 20

	DefaultTimezone = "Europe/Moscow"

	DefaultSessionExpirySchedule  = "0 */10 * * * *"
	DefaultSQLMaintenanceSchedule = "0 30 4 * * *"
)

// DefaultMessages are the Russian texts shown when no override is configured.
var DefaultMessages = MessagesConfig{
	Welcome:             "🎉 Добро пожаловать! Используйте меню:",
	LocationPrompt:      "📍 Введите ваше местоположение в формате: \"Страна, Город\"",
	LocationSaved:       "✅ Локация сохранена: %s",
	LocationInvalid:     "⚠️ Неверный формат. Пожалуйста, используйте: \"Страна, Город\"",
	LocationPending:     "⚠️ Сначала введите локацию или /cancel",
	LocationMissing:     "⚠️ Вы ещё не указали местоположение. Используйте команду /setlocation",
	Cancelled:           "❌ Отменено.",
	SubmissionCancelled: "❌ Вы отменили подачу объявления.",
	ChooseCategory:      "Выберите категорию:",
	CategoryChosen:      "📂 Категория: %s\n📝 Теперь введите описание объявления текстом.",
	ChooseCategoryFirst: "❗ Сначала выберите категорию.",
	CommandsBlocked:     "⛔ Команды недоступны во время подачи объявления. Доступна только /cancel.",
	DescriptionInvalid:  "❌ Описание не может быть пустым или начинаться с \"/\"",
	MediaPrompt:         "📎 Теперь отправьте файл (фото, видео или документ) или опубликуйте объявление без него.",
	DescriptionRequired: "❗ Файл получен. Теперь введите описание объявления текстом.",
	FinishSubmission:    "⚠️ Завершите подачу объявления или отправьте /cancel",
	PublishWithoutMedia: "📤 Опубликовать без файла",
	SubmitSuccess:       "✅ Объявление добавлено и опубликовано!",
	SubmitFailed:        "❌ Не удалось добавить объявление. Попробуйте позже.",
	GeneralError:        "❌ Произошла ошибка. Попробуйте позже.",
	NoAds:               "🔍 Объявлений пока нет.",
	NoAdsInCity:         "🔍 В вашем городе \"%s\" пока нет объявлений.",
	NoAdsInCountry:      "🔍 Объявлений в вашей стране \"%s\" тоже нет.",
	NoAdsInCategory:     "🔍 Объявлений в категории \"%s\" пока нет.",
	Broadened:           "ℹ️ Возможно, вас заинтересуют объявления в вашей стране \"%s\":",
	NoMoreAds:           "🔚 Больше объявлений нет.",
	ShowMorePrompt:      "⬇️ Показать ещё?",
	ShowMoreButton:      "Показать ещё",
	ChooseFilter:        "Выберите категорию для фильтра:",
	MyAdsEmpty:          "У вас пока нет опубликованных объявлений.",
	ChannelPrompt:       "Сюда 👇",
	ChannelButton:       "Перейти в канал",
	ChannelUnavailable:  "Ссылка на канал пока не настроена.",
	Help:                "По всем вопросам обращайтесь к администратору: @max12kolt",
	UseMenu:             "Используйте кнопки меню 👇",
	UnknownCommand:      "Неизвестная команда. Используйте меню или /start.",
	NotAuthorized:       "🚫 Доступ запрещён.",
	Stats:               "📊 Пользователей: %d\n📍 С локацией: %d\n📢 Объявлений: %d",
}

// defaults lists every key with its default. Keys must be known to viper
// for BOT_* environment overrides to reach Unmarshal, so required values
// are listed here too with an empty default.
var defaults = map[string]any{
	"logger.level": DefaultLogLevel,
	"logger.json":  false,

	"telegram.token":          "",
	"telegram.mode":           DefaultTelegramMode,
	"telegram.webhook_url":    "",
	"telegram.webhook_path":   DefaultTelegramWebhookPath,
	"telegram.webhook_secret": "",
	"telegram.listen_addr":    DefaultTelegramListenAddr,
	"telegram.channel_id":     "",
	"telegram.channel_url":    "",
	"telegram.admin_user_id":  0,

	"database.path": DefaultDatabasePath,

	"session.ttl": DefaultSessionTTL,

	"listing.batch_size":   DefaultListingBatchSize,
	"listing.my_ads_limit": DefaultMyAdsLimit,

	"timezone": DefaultTimezone,

	"scheduler.tasks.session_expiry.enabled":   true,
	"scheduler.tasks.session_expiry.schedule":  DefaultSessionExpirySchedule,
	"scheduler.tasks.sql_maintenance.enabled":  true,
	"scheduler.tasks.sql_maintenance.schedule": DefaultSQLMaintenanceSchedule,

	"messages.welcome":               DefaultMessages.Welcome,
	"messages.location_prompt":       DefaultMessages.LocationPrompt,
	"messages.location_saved":        DefaultMessages.LocationSaved,
	"messages.location_invalid":      DefaultMessages.LocationInvalid,
	"messages.location_pending":      DefaultMessages.LocationPending,
	"messages.location_missing":      DefaultMessages.LocationMissing,
	"messages.cancelled":             DefaultMessages.Cancelled,
	"messages.submission_cancelled":  DefaultMessages.SubmissionCancelled,
	"messages.choose_category":       DefaultMessages.ChooseCategory,
	"messages.category_chosen":       DefaultMessages.CategoryChosen,
	"messages.choose_category_first": DefaultMessages.ChooseCategoryFirst,
	"messages.commands_blocked":      DefaultMessages.CommandsBlocked,
	"messages.description_invalid":   DefaultMessages.DescriptionInvalid,
	"messages.media_prompt":          DefaultMessages.MediaPrompt,
	"messages.description_required":  DefaultMessages.DescriptionRequired,
	"messages.finish_submission":     DefaultMessages.FinishSubmission,
	"messages.publish_without_media": DefaultMessages.PublishWithoutMedia,
	"messages.submit_success":        DefaultMessages.SubmitSuccess,
	"messages.submit_failed":         DefaultMessages.SubmitFailed,
	"messages.general_error":         DefaultMessages.GeneralError,
	"messages.no_ads":                DefaultMessages.NoAds,
	"messages.no_ads_in_city":        DefaultMessages.NoAdsInCity,
	"messages.no_ads_in_country":     DefaultMessages.NoAdsInCountry,
	"messages.no_ads_in_category":    DefaultMessages.NoAdsInCategory,
	"messages.broadened":             DefaultMessages.Broadened,
	"messages.no_more_ads":           DefaultMessages.NoMoreAds,
	"messages.show_more_prompt":      DefaultMessages.ShowMorePrompt,
	"messages.show_more_button":      DefaultMessages.ShowMoreButton,
	"messages.choose_filter":         DefaultMessages.ChooseFilter,
	"messages.my_ads_empty":          DefaultMessages.MyAdsEmpty,
	"messages.channel_prompt":        DefaultMessages.ChannelPrompt,
	"messages.channel_button":        DefaultMessages.ChannelButton,
	"messages.channel_unavailable":   DefaultMessages.ChannelUnavailable,
	"messages.help":                  DefaultMessages.Help,
	"messages.use_menu":              DefaultMessages.UseMenu,
	"messages.unknown_command":       DefaultMessages.UnknownCommand,
	"messages.not_authorized":        DefaultMessages.NotAuthorized,
	"messages.stats":                 DefaultMessages.Stats,
}
