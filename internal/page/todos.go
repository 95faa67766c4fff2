package page

import (
	"fmt"
	"strings"
	"time"
)

// Todos page selectors.
const (
	todosPath         = "/todos"
	todosGreeting     = "[data-test='greeting']"
	todosNewInput     = "[data-test='new-todo']"
	todosList         = "[data-test='todo-list']"
	todosItem         = "[data-test='todo-item']"
	todosClearButton  = "[data-test='clear-completed']"
	todosFilterPrefix = "[data-test='filter-"
)

// Todos is the todo list screen shown after a successful login.
type Todos struct {
	tk Toolkit
}

// NewTodos binds the todos page to a toolkit.
func NewTodos(tk Toolkit) *Todos {
	return &Todos{tk: tk}
}

func (p *Todos) Name() string { return "todos" }

// Navigate opens the todos screen directly.
func (p *Todos) Navigate() error {
	return p.tk.Goto(todosPath)
}

// IsLoaded waits for the greeting and input landmarks.
func (p *Todos) IsLoaded(timeout time.Duration) bool {
	return p.tk.WaitVisible(todosGreeting, timeout) &&
		p.tk.WaitVisible(todosNewInput, timeout)
}

// AtTodosURL reports whether the session has landed on the todos
// screen.
func (p *Todos) AtTodosURL() bool {
	return strings.Contains(p.tk.CurrentURL(), todosPath)
}

// Greeting returns the landmark greeting text.
func (p *Todos) Greeting() (string, error) {
	return p.tk.Text(todosGreeting)
}

// item returns the selector for the todo item with the given text.
func item(text string) string {
	return fmt.Sprintf("%s:has-text(%q)", todosItem, text)
}

// Add types a new todo and submits it with Enter.
func (p *Todos) Add(text string) error {
	if err := p.tk.Fill(todosNewInput, text); err != nil {
		return err
	}
	return p.tk.Press(todosNewInput, "Enter")
}

// Complete marks the named todo as done via its checkbox.
func (p *Todos) Complete(text string) error {
	return p.tk.Check(item(text) + " input[type='checkbox']")
}

// Remove deletes the named todo via its destroy control.
func (p *Todos) Remove(text string) error {
	return p.tk.Click(item(text) + " [data-test='destroy']")
}

// Edit renames a todo: double-click activates the inline editor, then
// the text is replaced and committed with Enter.
func (p *Todos) Edit(oldText, newText string) error {
	if err := p.tk.Click(item(oldText) + " label"); err != nil {
		return err
	}
	editor := item(oldText) + " [data-test='edit']"
	if err := p.tk.Fill(editor, newText); err != nil {
		return err
	}
	return p.tk.Press(editor, "Enter")
}

// ClearCompleted removes every completed todo.
func (p *Todos) ClearCompleted() error {
	return p.tk.Click(todosClearButton)
}

// Filter switches the list filter (all, active, completed).
func (p *Todos) Filter(name string) error {
	return p.tk.Click(todosFilterPrefix + strings.ToLower(name) + "']")
}

// Has waits for the named todo to be present.
func (p *Todos) Has(text string) bool {
	return p.tk.WaitVisible(item(text), 0)
}

// Absent waits for the named todo to disappear.
func (p *Todos) Absent(text string) bool {
	return p.tk.WaitHidden(item(text), 0)
}

// IsCompleted reports whether the named todo is rendered as completed.
func (p *Todos) IsCompleted(text string) bool {
	return p.tk.Visible(item(text) + "[data-completed='true']")
}

// Count returns the number of visible todo items.
func (p *Todos) Count() (int, error) {
	return p.tk.CountOf(todosItem)
}
