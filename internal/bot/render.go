package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/m3rciful/privacybot/core/buildinfo"
	"github.com/m3rciful/privacybot/core/telegram/format"
	"github.com/m3rciful/privacybot/internal/archive"
	"github.com/m3rciful/privacybot/internal/quiz"
	"github.com/m3rciful/privacybot/internal/report"
)

const botTitle = "Telegram Privacy Auditor"

// fallbackReplies cycle for messages the bot does not understand.
var fallbackReplies = []string{
	"Я понимаю только кнопки и команды /start",
	"Пожалуйста, используйте кнопки для ответов",
	"Напишите /start чтобы начать проверку",
	"Выберите вариант ответа из кнопок ниже",
}

const (
	promptStartText  = "Напишите /start чтобы начать"
	cancelledText    = "❌ Проверка отменена. Для начала новой напишите /start"
	adminRefusalText = "⛔ Эта команда только для администраторов"
)

func renderWelcome(displayName string) string {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = "Пользователь"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<b>👋 Привет, %s!</b>\n\n", format.EscapeHTML(name))
	fmt.Fprintf(&b, "Я — <b>%s</b>\n", botTitle)
	b.WriteString("Проверю 5 ключевых настроек приватности и дам персонализированные рекомендации.\n\n")
	b.WriteString("<b>📊 Как работает оценка:</b>\n")
	fmt.Fprintf(&b, "• <code>%s</code> = 0 баллов (🔴 высокий риск)\n", quiz.AnswerEveryone)
	fmt.Fprintf(&b, "• <code>%s</code> = 1 балл (🟡 средний риск)\n", quiz.AnswerContacts)
	fmt.Fprintf(&b, "• <code>%s</code> = 2 балла (🟢 низкий риск)\n\n", quiz.AnswerNobody)
	b.WriteString("<b>🎯 Максимальный результат:</b> 10/10 баллов\n\n")
	b.WriteString("<b>📝 Для каждого ответа вы получите:</b>\n")
	b.WriteString("1. Объяснение рисков\n")
	b.WriteString("2. Рекомендации по исправлению\n")
	b.WriteString("3. Персональный отчет в конце\n\n")
	b.WriteString("<code>Нажмите кнопку ниже чтобы начать проверку!</code>")
	return b.String()
}

func renderQuestion(q quiz.Question, index, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Вопрос %d из %d</b>\n\n", index+1, total)
	b.WriteString(q.Prompt)
	b.WriteString("\n\nВыберите вариант ответа:")
	return b.String()
}

func renderRisk(q quiz.Question, choice string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Ваш ответ:</b> <code>%s</code>\n\n", choice)
	b.WriteString(q.Risks[choice])
	b.WriteString("\n\n<b>🔧 Как исправить:</b>\n")
	b.WriteString(q.Remediation)
	b.WriteString("\n\n<i>Нажмите на кнопку в Telegram чтобы перейти прямо в настройки</i>")
	return b.String()
}

func renderReport(rep *report.Report) string {
	level := rep.Level
	minutes := int(rep.Duration.Seconds()) / 60
	seconds := int(rep.Duration.Seconds()) % 60

	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>ПЕРСОНАЛИЗИРОВАННЫЙ ОТЧЕТ</b> %s\n\n", level.Color, level.Color)
	fmt.Fprintf(&b, "<b>👤 Пользователь:</b> %s\n", format.EscapeHTML(rep.DisplayName))
	fmt.Fprintf(&b, "<b>📅 Дата проверки:</b> %s\n", rep.FinishedAt.Format("02.01.2006 15:04"))
	fmt.Fprintf(&b, "<b>⏱️ Время прохождения:</b> %d мин %d сек\n\n", minutes, seconds)
	b.WriteString("<b>🎯 ИТОГОВЫЙ РЕЗУЛЬТАТ:</b>\n")
	fmt.Fprintf(&b, "<b>Оценка:</b> <code>%d/%d баллов</code>\n", rep.Score, rep.MaxScore)
	fmt.Fprintf(&b, "<b>Уровень защиты:</b> <code>%s</code>\n", level.Name)
	fmt.Fprintf(&b, "<b>Описание:</b> %s\n\n", level.Description)

	total := rep.MaxScore / 2
	b.WriteString("<b>📊 РАСПРЕДЕЛЕНИЕ ОТВЕТОВ:</b>\n")
	fmt.Fprintf(&b, "• <code>%s</code> (🟢 безопасно): %d/%d\n", quiz.AnswerNobody, rep.Tally[quiz.AnswerNobody], total)
	fmt.Fprintf(&b, "• <code>%s</code> (🟡 средний риск): %d/%d\n", quiz.AnswerContacts, rep.Tally[quiz.AnswerContacts], total)
	fmt.Fprintf(&b, "• <code>%s</code> (🔴 высокий риск): %d/%d\n\n", quiz.AnswerEveryone, rep.Tally[quiz.AnswerEveryone], total)

	b.WriteString("<b>🔍 ДЕТАЛЬНЫЙ АНАЛИЗ:</b>\n")
	if len(rep.WeakPoints) > 0 {
		b.WriteString("\n<b>🚨 СЛАБЫЕ МЕСТА (рекомендуем исправить):</b>\n")
		for _, wp := range rep.WeakPoints {
			riskLevel := "🟡 СРЕДНИЙ"
			if wp.Answer.Points == 0 {
				riskLevel = "🔴 ВЫСОКИЙ"
			}
			fmt.Fprintf(&b, "\n• <b>%s</b>\n", wp.Question.Prompt)
			fmt.Fprintf(&b, "  Ваш ответ: <code>%s</code> (%s риск)\n", wp.Answer.Choice, riskLevel)
			fmt.Fprintf(&b, "  Исправить: %s\n", wp.Question.Remediation)
		}
	} else {
		b.WriteString("\n<b>✅ Отличная работа! Все настройки оптимальны.</b>\n")
	}

	b.WriteString("\n<b>📈 ВИЗУАЛЬНАЯ ШКАЛА ЗАЩИТЫ:</b>\n")
	fmt.Fprintf(&b, "%s %d/%d\n\n", rep.Bar, rep.Score, rep.MaxScore)
	b.WriteString("<b>🔄 Для нового теста напишите</b> <code>/start</code>\n\n")
	b.WriteString("<b>💡 Совет:</b> Регулярно проверяйте настройки приватности!\n")
	b.WriteString("<b>🔐 Берегите свои данные!</b>")
	return b.String()
}

func renderReportStats(stats report.Stats, maxScore int) string {
	var b strings.Builder
	b.WriteString("<b>📈 СТАТИСТИКА ПРОВЕРКИ:</b>\n")
	fmt.Fprintf(&b, "• Всего проверок сегодня: %d\n", stats.StartedToday)
	fmt.Fprintf(&b, "• Средний результат: <code>%.1f/%d</code>\n", stats.MeanScore, maxScore)
	fmt.Fprintf(&b, "• Ваш результат лучше чем у %.0f%% пользователей\n\n", stats.Percentile)
	b.WriteString("<i>Результат сохранен в логах бота</i>")
	return b.String()
}

func renderAdminStats(stats report.Stats, maxScore int, uptime time.Duration, sendErrors uint64, counters *archive.Counters) string {
	var b strings.Builder
	b.WriteString("<b>📊 СТАТИСТИКА БОТА:</b>\n")
	fmt.Fprintf(&b, "• Версия: %s\n", buildinfo.Version)
	fmt.Fprintf(&b, "• Активных сессий: %d\n", stats.ActiveSessions)
	fmt.Fprintf(&b, "• Всего пользователей сегодня: %d\n", stats.StartedToday)
	fmt.Fprintf(&b, "• Средний балл: %.1f/%d\n", stats.MeanScore, maxScore)
	fmt.Fprintf(&b, "• Время работы: %.1f часов\n", uptime.Hours())
	fmt.Fprintf(&b, "• Ошибок отправки: %d\n", sendErrors)
	if counters != nil {
		b.WriteString("\n<b>🗄️ АРХИВ ПРОВЕРОК:</b>\n")
		fmt.Fprintf(&b, "• Всего завершено: %d\n", counters.Total)
		fmt.Fprintf(&b, "• Завершено сегодня: %d\n", counters.Today)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderVersion() string {
	var b strings.Builder
	b.WriteString("<b>ℹ️ ИНФОРМАЦИЯ О БОТЕ:</b>\n")
	fmt.Fprintf(&b, "• Название: %s\n", botTitle)
	fmt.Fprintf(&b, "• Версия: %s\n", buildinfo.Version)
	if buildinfo.Commit != "" {
		fmt.Fprintf(&b, "• Сборка: <code>%s</code>\n", buildinfo.Commit)
	}
	b.WriteString("\n<b>🔒 БЕЗОПАСНОСТЬ:</b>\n")
	b.WriteString("• Токен защищен: ✅\n")
	b.WriteString("• Логирование: ✅\n")
	b.WriteString("• Защита данных: ✅")
	return b.String()
}
