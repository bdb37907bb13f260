// Package format prints token trees back to source text.
//
// Назначение: вывод результата раскрытия в текст, в двух раскладках.
// Preserve повторяет исходные пробелы и комментарии, которые токены несут в
// Leading; Compact сводит пробелы к одному и переносит строки после `;` и
// блоков `{}`.
// Не делает: разбора, проверки синтаксиса, IO.
// Зависимости: internal/tree, internal/token.
package format
