package logger

import "go.uber.org/zap"

// L 全局日志器（SugaredLogger，printf 风格够用）
var L *zap.SugaredLogger

func Init() {
	base, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	L = base.Sugar()
}
