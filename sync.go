package solarfx

// SyncPass pushes the frame clock into every registered object's time uniform
// and, for comets, the distance to the sun into distanceToSun. The sun sits at
// the world origin.
type SyncPass struct {
	registry *UniformRegistry
	clock    Clock
}

func NewSyncPass(registry *UniformRegistry, clock Clock) *SyncPass {
	return &SyncPass{registry: registry, clock: clock}
}

// Update runs one sweep. Objects lacking a uniform are skipped for it.
func (p *SyncPass) Update() {
	t := p.clock.ElapsedSeconds()
	for i := range p.registry.entries {
		e := &p.registry.entries[i]
		if e.time != nil {
			e.time.Float = t
		}
		if e.object.IsComet && e.distance != nil {
			e.distance.Float = e.object.Position.Len()
		}
	}
}

// ShaderSyncModule installs the registry, keeps object positions in step with
// their entities and runs the sync pass before rendering.
type ShaderSyncModule struct {
	// Clock defaults to the Time resource.
	Clock Clock
}

func (m ShaderSyncModule) Install(app *App, cmd *Commands) {
	clock := m.Clock
	if clock == nil {
		t, ok := Resource[Time](app)
		if !ok {
			panic("ShaderSyncModule needs a Clock or the TimeModule installed first")
		}
		clock = t
	}

	registry, ok := Resource[UniformRegistry](app)
	if !ok {
		registry = NewUniformRegistry()
		cmd.AddResources(registry)
	}
	cmd.AddResources(NewSyncPass(registry, clock))

	app.UseSystem(
		System(shadedTransformSystem).
			InStage(PreRender),
	)
	app.UseSystem(
		System(shaderSyncSystem).
			InStage(PreRender),
	)
}

func shadedTransformSystem(cmd *Commands) {
	MakeQuery2[ShadedComponent, TransformComponent](cmd).Map(func(eid EntityId, sc *ShadedComponent, tr *TransformComponent) bool {
		if sc.Object != nil {
			sc.Object.Position = tr.Position
		}
		return true
	})
}

func shaderSyncSystem(pass *SyncPass) {
	pass.Update()
}
