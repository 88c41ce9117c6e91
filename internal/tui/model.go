package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ptpay/internal/calculation"
	"github.com/rgehrsitz/ptpay/internal/config"
	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/rgehrsitz/ptpay/internal/tui/scenes"
	"github.com/rgehrsitz/ptpay/internal/tui/tuimsg"
)

// DefaultGross is the monthly salary the calculator opens with.
var DefaultGross = decimal.NewFromInt(2500)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Scenario file
	configPath string
	config     *domain.Configuration

	calcEngine *calculation.CalculationEngine

	selectedScenario string

	calculatorModel *scenes.CalculatorModel
	scenariosModel  *scenes.ScenariosModel

	// Error state
	err error
}

// NewModel creates a new application model. configPath may be empty.
func NewModel(engine *calculation.CalculationEngine, configPath string) Model {
	return Model{
		currentScene:    SceneCalculator,
		configPath:      configPath,
		calcEngine:      engine,
		calculatorModel: scenes.NewCalculatorModel(engine, domain.DefaultInput(DefaultGross)),
		scenariosModel:  scenes.NewScenariosModel(),
		width:           80,
		height:          24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.configPath == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, loadConfigCmd(m.configPath))
}

// loadConfigCmd returns a command that loads the scenario file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return tuimsg.ConfigLoadedMsg{Path: path, Config: cfg}
	}
}

// Calculator exposes the calculator scene
func (m Model) Calculator() *scenes.CalculatorModel { return m.calculatorModel }

// CurrentScene returns the active scene
func (m Model) CurrentScene() Scene { return m.currentScene }

// Err returns the error being displayed, if any
func (m Model) Err() error { return m.err }
