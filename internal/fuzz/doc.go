// Package fuzztests houses Go fuzz harnesses for the expansion pipeline
// (source -> lexer -> token trees -> seq expansion -> printer). They guard
// against panics, hangs and broken span invariants on arbitrary input.
//
// Назначение: загружать байты в FileSet и прогонять их через весь конвейер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
