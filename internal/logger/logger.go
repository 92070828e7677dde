package logger

import (
	"os"

	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}).
	With().Timestamp().Logger().
	Level(zerolog.InfoLevel)

// SetDebug 设置是否开启调试模式
func SetDebug(debug bool) {
	if debug {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}
}

// Info 打印信息日志
func Info(format string, v ...interface{}) {
	log.Info().Msgf(format, v...)
}

// Debug 打印调试日志
func Debug(format string, v ...interface{}) {
	log.Debug().Msgf(format, v...)
}

// Error 打印错误日志
func Error(format string, v ...interface{}) {
	log.Error().Msgf(format, v...)
}

// Fatal 打印错误日志并退出
func Fatal(format string, v ...interface{}) {
	log.Fatal().Msgf(format, v...)
}
