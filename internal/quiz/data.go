package quiz

// Default returns the built-in Telegram privacy audit: five checks covering
// the settings most often left wide open.
func Default() *Catalog {
	return MustNew(defaultQuestions, defaultPoints, defaultLevels)
}

var defaultPoints = map[string]int{
	AnswerEveryone: 0,
	AnswerContacts: 1,
	AnswerNobody:   2,
}

var defaultQuestions = []Question{
	{
		ID:     "phone",
		Prompt: "📱 Кто видит ваш номер телефона?",
		Risks: map[string]string{
			AnswerEveryone: "🔴 <b>ВЫСОКИЙ РИСК</b>\n• Номер могут использовать для спама и фишинга\n• Можно найти вас в социальных сетях\n• Возможна подмена SIM-карты (SIM-swap)",
			AnswerContacts: "🟡 <b>СРЕДНИЙ РИСК</b>\n• Контакты могут случайно раскрыть номер\n• При утечке телефона контактов - номер доступен",
			AnswerNobody:   "🟢 <b>НИЗКИЙ РИСК</b>\n• Максимальная защита номера\n• Рекомендуемая настройка",
		},
		Remediation: "Настройки → Конфиденциальность → Номер телефона",
	},
	{
		ID:     "last_seen",
		Prompt: "⏰ Кто видит, когда вы были в сети?",
		Risks: map[string]string{
			AnswerEveryone: "🔴 <b>ВЫСОКИЙ РИСК</b>\n• Можно отследить ваш график активности\n• Злоумышленники знают когда вы онлайн\n• Упрощает социальную инженерию",
			AnswerContacts: "🟡 <b>СРЕДНИЙ РИСК</b>\n• Контакты видят вашу активность\n• Могут определить когда вы спите/работаете",
			AnswerNobody:   "🟢 <b>НИЗКИЙ РИСК</b>\n• Полная анонимность статуса\n• Рекомендуемая настройка",
		},
		Remediation: "Настройки → Конфиденциальность → Время последнего посещения",
	},
	{
		ID:     "profile_photo",
		Prompt: "🖼️ Кто видит вашу фотографию профиля?",
		Risks: map[string]string{
			AnswerEveryone: "🔴 <b>ВЫСОКИЙ РИСК</b>\n• Фото можно использовать для поиска по изображению\n• Возможность создания фейковых аккаунтов\n• Сбор биометрических данных",
			AnswerContacts: "🟡 <b>СРЕДНИЙ РИСК</b>\n• Ограниченный круг видимости\n• Риск если телефон контакта скомпрометирован",
			AnswerNobody:   "🟢 <b>НИЗКИЙ РИСК</b>\n• Максимальная приватность\n• Рекомендуемая настройка",
		},
		Remediation: "Настройки → Конфиденциальность → Фотография профиля",
	},
	{
		ID:     "groups",
		Prompt: "👥 Кто может добавлять вас в группы?",
		Risks: map[string]string{
			AnswerEveryone: "🔴 <b>ВЫСОКИЙ РИСК</b>\n• Вас могут добавлять в спам-чаты\n• Мошеннические группы и фишинг\n• Потеря контроля над вступлением",
			AnswerContacts: "🟡 <b>СРЕДНИЙ РИСК</b>\n• Только знакомые могут добавлять\n• Риск если контакт скомпрометирован",
			AnswerNobody:   "🟢 <b>НИЗКИЙ РИСК</b>\n• Полный контроль над группами\n• Рекомендуемая настройка",
		},
		Remediation: "Настройки → Конфиденциальность → Группы и каналы",
	},
	{
		ID:     "forwarding",
		Prompt: "🔗 Кто может создавать ссылки на ваш профиль?",
		Risks: map[string]string{
			AnswerEveryone: "🔴 <b>ВЫСОКИЙ РИСК</b>\n• Ваш профиль могут репостить где угодно\n• Упрощает сбор информации о вас\n• Спам через упоминания",
			AnswerContacts: "🟡 <b>СРЕДНИЙ РИСК</b>\n• Ограниченный круг\n• Риск неконтролируемого распространения",
			AnswerNobody:   "🟢 <b>НИЗКИЙ РИСК</b>\n• Максимальная защита от упоминаний\n• Рекомендуемая настройка",
		},
		Remediation: "Настройки → Конфиденциальность → Пересылка сообщений",
	},
}

var defaultLevels = map[int]Level{
	10: {Name: "🎉 ИДЕАЛЬНО", Color: "🟢", Description: "Вы хакер уровня паранойи! Идеальная защита."},
	9:  {Name: "✅ ОТЛИЧНО", Color: "🟢", Description: "Почти идеально. Можно расслабиться."},
	8:  {Name: "👍 ХОРОШО", Color: "🟢", Description: "Хорошая защита. Небольшие риски."},
	7:  {Name: "⚠️ НОРМАЛЬНО", Color: "🟡", Description: "Средний уровень. Есть что улучшить."},
	6:  {Name: "⚠️ УДОВЛЕТВОРИТЕЛЬНО", Color: "🟡", Description: "Приемлемо, но нужно работать."},
	5:  {Name: "🔴 ТРЕВОГА", Color: "🔴", Description: "Низкая защита. Вы в зоне риска."},
	4:  {Name: "🔴 ОПАСНО", Color: "🔴", Description: "Опасный уровень. Срочно меняйте настройки!"},
	3:  {Name: "🚨 КРИТИЧЕСКИ", Color: "🔴", Description: "Критически низкая защита!"},
	2:  {Name: "💀 КАТАСТРОФА", Color: "💀", Description: "Ваши данные полностью уязвимы!"},
	1:  {Name: "💀 АПОКАЛИПСИС", Color: "💀", Description: "Немедленно настройте приватность!"},
	0:  {Name: "☢️ ЯДЕРНЫЙ УРОВЕНЬ", Color: "☢️", Description: "Вы вообще не скрываетесь?!"},
}
