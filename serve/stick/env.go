package stick

import (
	"sync"

	"BaziMeta/cmn"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	machine *Machine  // 抽签机实例
	once    sync.Once // 确保只初始化一次
	z       *zap.Logger
)

func Init() {
	z = cmn.GetLogger()

	cost := viper.GetFloat64("stick.cost")
	if cost < 0 {
		z.Fatal("[ FAIL ] stick.cost must be greater than or equal to 0")
	}
	dailyLimit := viper.GetInt("stick.dailyLimit")
	if dailyLimit < 0 {
		z.Fatal("[ FAIL ] stick.dailyLimit must be greater than or equal to 0")
	}

	once.Do(func() {
		var err error
		machine, err = NewMachine(cost, dailyLimit)
		if err != nil {
			z.Fatal("[ FAIL ] failed to create stick machine", zap.Error(err))
		}
	})

	cmn.MiniLogger.Info("[ OK ] stick module initialized")
}
