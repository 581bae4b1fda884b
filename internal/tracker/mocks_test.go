package tracker

import (
	"errors"

	"mastery/internal/store"
)

var errDiskGone = errors.New("disk unavailable")

// fakeStore is an in-memory Store with per-operation failure injection.
type fakeStore struct {
	users      []store.UserRow
	containers map[string]store.ContainerRow
	hadData    bool

	failInsertUser      bool
	failInsertContainer bool
	failUpdateContainer bool
	failRename          bool
	failUpdateUser      bool
	failDelete          bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{containers: make(map[string]store.ContainerRow)}
}

func (f *fakeStore) LoadAll() ([]store.UserRow, []store.ContainerRow, bool, error) {
	if !f.hadData {
		return nil, nil, false, nil
	}
	rows := make([]store.ContainerRow, 0, len(f.containers))
	for _, row := range f.containers {
		rows = append(rows, row)
	}
	return f.users, rows, true, nil
}

func (f *fakeStore) InsertUser(id, username string) error {
	if f.failInsertUser {
		return errDiskGone
	}
	for _, u := range f.users {
		if u.ID == id {
			return nil
		}
	}
	f.users = append(f.users, store.UserRow{ID: id, Username: username})
	return nil
}

func (f *fakeStore) InsertContainer(row store.ContainerRow) error {
	if f.failInsertContainer {
		return errDiskGone
	}
	f.containers[row.ID] = row
	return nil
}

func (f *fakeStore) UpdateContainer(id string, hours float64, lvl string) error {
	if f.failUpdateContainer {
		return errDiskGone
	}
	row, ok := f.containers[id]
	if !ok {
		return nil
	}
	row.XPLevel = hours
	row.Level = lvl
	f.containers[id] = row
	return nil
}

func (f *fakeStore) RenameContainer(id, name string) error {
	if f.failRename {
		return errDiskGone
	}
	row, ok := f.containers[id]
	if !ok {
		return nil
	}
	row.Name = name
	f.containers[id] = row
	return nil
}

func (f *fakeStore) UpdateUser(id, name string) error {
	if f.failUpdateUser {
		return errDiskGone
	}
	for i, u := range f.users {
		if u.ID == id {
			f.users[i].Username = name
		}
	}
	return nil
}

func (f *fakeStore) DeleteContainer(id string) error {
	if f.failDelete {
		return errDiskGone
	}
	delete(f.containers, id)
	return nil
}
