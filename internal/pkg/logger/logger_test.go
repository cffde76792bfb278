package logx

import (
	"testing"

	"github.com/palazzem/cash-register/internal/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitLevels(t *testing.T) {
	defer Init(core.Testing)

	cases := map[core.Environment]zerolog.Level{
		core.Production:  zerolog.InfoLevel,
		core.Testing:     zerolog.WarnLevel,
		core.Development: zerolog.DebugLevel,
		core.Staging:     zerolog.DebugLevel,
	}
	for env, want := range cases {
		Init(env)
		assert.Equal(t, want, log.Logger.GetLevel(), env.String())
	}
}
