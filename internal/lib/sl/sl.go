// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель: упростить формирование структурированных полей лога,
// например, для передачи информации об ошибках.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Session возвращает атрибут с сокращённым идентификатором сессии,
// полный идентификатор в лог не пишется.
func Session(sid string) slog.Attr {
	if len(sid) > 8 {
		sid = sid[:8]
	}
	return slog.String("session", sid)
}
