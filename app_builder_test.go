package solarfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockModule struct {
	installed bool
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
}

type spawningModule struct {
	eid EntityId
}

func (m *spawningModule) Install(app *App, commands *Commands) {
	m.eid = commands.AddEntity(&TransformComponent{})
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	builder.UseModule(&MockModule{})

	assert.Len(t, builder.modules, 1)
}

func TestAppBuilder_Build_WithMultipleModules(t *testing.T) {
	module1 := &MockModule{}
	module2 := &MockModule{}

	NewAppBuilder().
		UseModule(module1).
		UseModule(module2).
		Build()

	assert.True(t, module1.installed, "Expected Install to be called on the module 1")
	assert.True(t, module2.installed, "Expected Install to be called on the module 2")
}

func TestAppBuilder_BuildFlushesInstallCommands(t *testing.T) {
	module := &spawningModule{}
	app := NewAppBuilder().UseModule(module).Build()

	assert.True(t, app.Commands().HasEntity(module.eid))
}
