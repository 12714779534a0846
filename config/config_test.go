package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, 120, AppConfig.MaxRequestsPerMin)
	assert.Equal(t, 10*time.Second, AppConfig.RemoteTimeout)
	assert.Equal(t, 72*time.Hour, AppConfig.ScheduleCacheTTL)
	assert.Equal(t, []string{"manager", "server", "driver"}, AppConfig.SolverRoleOrder)
	assert.Equal(t, []string{"Manager", "Server", "Driver"}, AppConfig.DefaultJobs)
	assert.Equal(t, RegenerationInline, AppConfig.RegenerationMode)
	assert.True(t, AppConfig.SettingsPersist)
	assert.False(t, IsProduction())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("ENV", "production")
	t.Setenv("SOLVER_ROLE_ORDER", "driver,manager")
	t.Setenv("SOLVER_TIMEOUT", "5s")
	t.Setenv("REGENERATION_MODE", "queue")
	t.Setenv("REDIS_QUEUE_DB", "4")

	LoadConfig()

	assert.True(t, IsProduction())
	assert.Equal(t, []string{"driver", "manager"}, AppConfig.SolverRoleOrder)
	assert.Equal(t, 5*time.Second, AppConfig.SolverTimeout)
	assert.Equal(t, RegenerationQueue, AppConfig.RegenerationMode)
	assert.Equal(t, 4, AppConfig.RedisQueueDB)
}

func TestLoadConfig_ReloadReplacesLists(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	LoadConfig()
	require.Len(t, AppConfig.SolverRoleOrder, 3)

	viper.Reset()
	t.Setenv("SOLVER_ROLE_ORDER", "server")
	t.Setenv("SCHOOL_DAYS", "sat")
	LoadConfig()

	assert.Equal(t, []string{"server"}, AppConfig.SolverRoleOrder)
	assert.Equal(t, []string{"sat"}, AppConfig.SchoolDays)
}
