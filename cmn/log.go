package cmn

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logDir = "logs"
)

var (
	logger     *zap.Logger
	MiniLogger *zap.Logger
	logOnce    sync.Once
)

// InitLogger 初始化全局日志，debug 为 true 时使用彩色控制台日志，
// 否则使用 JSON 日志并同时写入 logs/ 下的日志文件
func InitLogger(debug bool) {
	logOnce.Do(func() {
		err := os.MkdirAll(logDir, os.ModePerm)
		if err != nil {
			fmt.Printf("create log directory failed: %v\n", err)
			os.Exit(1)
		}

		// 日志文件名带启动时间戳，便于区分每次运行
		timestamp := time.Now().Format("2006-01-02T15-04-05")
		logFileName := fmt.Sprintf("%s/bazimeta-%s.log", logDir, timestamp)

		if debug {
			err = initDevLogger()
		} else {
			err = initProdLogger(logFileName)
		}
		if err != nil {
			fmt.Printf("init logger failed: %v\n", err)
			os.Exit(1)
		}

		err = initMiniLogger()
		if err != nil {
			fmt.Printf("init mini logger failed: %v\n", err)
			os.Exit(1)
		}

		logger = zap.L()
	})

	MiniLogger.Info("[ OK ] log module initialized")
}

// GetLogger 获取全局的logger
func GetLogger() *zap.Logger {
	return logger
}

// initDevLogger 初始化开发环境日志，控制台彩色输出，Debug 级别起
func initDevLogger() error {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = "T"
	encoderConfig.CallerKey = "C"

	// 级别编码使用带颜色版本，方便开发时扫日志
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.FullCallerEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.DebugLevel)

	logger := zap.New(zapcore.NewTee(consoleCore), zap.AddCaller())
	zap.ReplaceGlobals(logger)

	return nil
}

// initProdLogger 初始化生产环境日志，JSON 格式，控制台与文件双写。
// 文件每次启动新建一个，日志切割交给外部工具处理
func initProdLogger(logFilePath string) error {
	file, err := os.Create(logFilePath)
	if err != nil {
		fmt.Printf("create log file failed: %v\n", err)
		return err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zapcore.InfoLevel,
	)

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(file),
		zapcore.InfoLevel,
	)

	core := zapcore.NewTee(consoleCore, fileCore)

	logger := zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(logger)

	return nil
}

// initMiniLogger 初始化极简日志，只输出消息本身，用于启动阶段的模块初始化提示
func initMiniLogger() error {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:   "msg",
		EncodeTime:   nil,
		EncodeLevel:  nil,
		EncodeCaller: nil,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(zapcore.Lock(os.Stdout)),
		zapcore.InfoLevel,
	)

	MiniLogger = zap.New(core)

	return nil
}
