package app

const msgWelcome = `PrepIQ — подготовка к экзаменам.

Команды во время теста:
  <текст>  — ответ на текущий вопрос
  /next    — следующий вопрос
  /prev    — предыдущий вопрос
  /submit  — завершить тест и отправить ответы
`

const msgWizardIntro = `Сначала пара вопросов о вас.`

const msgWizardDone = `Онбординг завершён!`

const msgNoSubjects = `У вас пока нет предметов. Добавьте предмет и возвращайтесь.`

const msgChooseSubject = `Выберите номер предмета:`

const msgTestStarted = `Тест начался. Удачи!`

const msgTimeUp = `Время вышло! Отправляю ответы автоматически.`

const msgSubmitFailed = `Не удалось отправить ответы. Повторите командой /submit.`

const msgAnswerAcceptance = `Ваш ответ принят!`
