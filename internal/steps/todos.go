package steps

import (
	"fmt"
)

func (s *Scenario) todoSteps() Category {
	return Category{
		Name:        "Todos",
		Description: "CRUD operations on the todo list",
		Steps: []Def{
			{
				Pattern:     `^the user is logged in as "([^"]*)" with password "([^"]*)"$`,
				Description: "Logs in and waits for the todo list",
				Example:     `Given the user is logged in as "admin" with password "password"`,
				Handler:     s.theUserIsLoggedInAs,
			},
			{
				Pattern:     `^the user adds a todo "([^"]*)"$`,
				Description: "Types a new todo and submits it",
				Example:     `When the user adds a todo "buy milk"`,
				Handler:     s.theUserAddsATodo,
			},
			{
				Pattern:     `^the user completes the todo "([^"]*)"$`,
				Description: "Marks the named todo as done",
				Example:     `When the user completes the todo "buy milk"`,
				Handler:     s.theUserCompletesTheTodo,
			},
			{
				Pattern:     `^the user removes the todo "([^"]*)"$`,
				Description: "Deletes the named todo",
				Example:     `When the user removes the todo "buy milk"`,
				Handler:     s.theUserRemovesTheTodo,
			},
			{
				Pattern:     `^the user renames the todo "([^"]*)" to "([^"]*)"$`,
				Description: "Edits the named todo's text in place",
				Example:     `When the user renames the todo "buy milk" to "buy oat milk"`,
				Handler:     s.theUserRenamesTheTodo,
			},
			{
				Pattern:     `^the user clears completed todos$`,
				Description: "Removes every completed todo",
				Example:     `When the user clears completed todos`,
				Handler:     s.theUserClearsCompletedTodos,
			},
			{
				Pattern:     `^the user filters todos by "([^"]*)"$`,
				Description: "Switches the list filter (all, active, completed)",
				Example:     `When the user filters todos by "active"`,
				Handler:     s.theUserFiltersTodosBy,
			},
			{
				Pattern:     `^the todo "([^"]*)" should be listed$`,
				Description: "Asserts the named todo is visible",
				Example:     `Then the todo "buy milk" should be listed`,
				Handler:     s.theTodoShouldBeListed,
			},
			{
				Pattern:     `^the todo "([^"]*)" should not be listed$`,
				Description: "Asserts the named todo is absent",
				Example:     `Then the todo "buy milk" should not be listed`,
				Handler:     s.theTodoShouldNotBeListed,
			},
			{
				Pattern:     `^the todo "([^"]*)" should be marked completed$`,
				Description: "Asserts the named todo renders as completed",
				Example:     `Then the todo "buy milk" should be marked completed`,
				Handler:     s.theTodoShouldBeMarkedCompleted,
			},
			{
				Pattern:     `^the todo list should have (\d+) items?$`,
				Description: "Asserts the number of visible todos",
				Example:     `Then the todo list should have 2 items`,
				Handler:     s.theTodoListShouldHaveItems,
			},
		},
	}
}

func (s *Scenario) theUserIsLoggedInAs(username, password string) error {
	if err := s.theLoginPageIsOpen(); err != nil {
		return err
	}
	if err := s.login.LoginAs(username, password); err != nil {
		return err
	}
	if !s.todos.IsLoaded(0) {
		return fmt.Errorf("todo list did not load after login as %q", username)
	}
	return nil
}

func (s *Scenario) theUserAddsATodo(text string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.todos.Add(text)
}

func (s *Scenario) theUserCompletesTheTodo(text string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.todos.Complete(text)
}

func (s *Scenario) theUserRemovesTheTodo(text string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.todos.Remove(text)
}

func (s *Scenario) theUserRenamesTheTodo(oldText, newText string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.todos.Edit(oldText, newText)
}

func (s *Scenario) theUserClearsCompletedTodos() error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.todos.ClearCompleted()
}

func (s *Scenario) theUserFiltersTodosBy(name string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.todos.Filter(name)
}

func (s *Scenario) theTodoShouldBeListed(text string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !s.todos.Has(text) {
		return fmt.Errorf("todo %q is not listed", text)
	}
	return nil
}

func (s *Scenario) theTodoShouldNotBeListed(text string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !s.todos.Absent(text) {
		return fmt.Errorf("todo %q is still listed", text)
	}
	return nil
}

func (s *Scenario) theTodoShouldBeMarkedCompleted(text string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !s.todos.Has(text) {
		return fmt.Errorf("todo %q is not listed", text)
	}
	if !s.todos.IsCompleted(text) {
		return fmt.Errorf("todo %q is not marked completed", text)
	}
	return nil
}

func (s *Scenario) theTodoListShouldHaveItems(count int) error {
	if err := s.ready(); err != nil {
		return err
	}
	n, err := s.todos.Count()
	if err != nil {
		return err
	}
	if n != count {
		return fmt.Errorf("todo list has %d items, want %d", n, count)
	}
	return nil
}
