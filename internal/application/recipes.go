package application

import (
	"fmt"
	"slices"
	"time"

	"github.com/bnema/barcamp-grid/internal/domain"
)

func addTrackRecipe(id domain.TrackID, icon string) Recipe {
	return func(grid *domain.SessionGrid) error {
		grid.Tracks = append(grid.Tracks, domain.Track{
			ID:   id,
			Name: fmt.Sprintf("Track %d", len(grid.Tracks)+1),
			Icon: icon,
		})
		return nil
	}
}

// updateTrackRecipe merges changes into a track. Unknown tracks are ignored.
func updateTrackRecipe(id domain.TrackID, changes TrackChanges) Recipe {
	return func(grid *domain.SessionGrid) error {
		index := grid.TrackIndex(id)
		if index < 0 {
			return nil
		}
		if changes.Name != nil {
			grid.Tracks[index].Name = *changes.Name
		}
		if changes.Icon != nil {
			grid.Tracks[index].Icon = *changes.Icon
		}
		return nil
	}
}

// deleteTrackRecipe removes a track and moves its sessions to the front of
// the parking lot.
func deleteTrackRecipe(id domain.TrackID) Recipe {
	return func(grid *domain.SessionGrid) error {
		if len(grid.Tracks) <= 1 {
			return domain.NewUpdateError("Can not delete last track")
		}

		grid.Tracks = slices.DeleteFunc(grid.Tracks, func(t domain.Track) bool { return t.ID == id })

		var parked []domain.ParkingLotEntry
		grid.Sessions = slices.DeleteFunc(grid.Sessions, func(s domain.Session) bool {
			if s.TrackID != id {
				return false
			}
			parked = append(parked, domain.ParkingLotEntry{TopicID: s.TopicID})
			return true
		})
		grid.ParkingLot = append(parked, grid.ParkingLot...)
		return nil
	}
}

func addTimeSlotRecipe(slot domain.TimeSlot) Recipe {
	return func(grid *domain.SessionGrid) error {
		grid.TimeSlots = append(grid.TimeSlots, slot)
		grid.TimeSlots = domain.RecalculateTimeSlots(grid.TimeSlots)
		return nil
	}
}

// updateCommonEventRecipe only touches common event slots.
func updateCommonEventRecipe(id domain.TimeSlotID, changes CommonEventChanges) Recipe {
	return func(grid *domain.SessionGrid) error {
		index := grid.TimeSlotIndex(id)
		if index < 0 {
			return nil
		}
		event, ok := grid.TimeSlots[index].CommonEvent()
		if !ok {
			return nil
		}
		if changes.Summary != nil {
			event.Summary = *changes.Summary
		}
		if changes.Icon != nil {
			event.Icon = *changes.Icon
		}
		grid.TimeSlots[index].Variant = event
		return nil
	}
}

// updateTimeSlotRecipe moves the grid start or changes a slot duration. Only
// the first slot accepts a new start time; later slots follow from the
// durations of their predecessors.
func updateTimeSlotRecipe(id domain.TimeSlotID, changes TimeSlotChanges) Recipe {
	return func(grid *domain.SessionGrid) error {
		var opts []domain.RecalculateOption

		if changes.StartTime != nil {
			if len(grid.TimeSlots) == 0 || grid.TimeSlots[0].ID != id {
				return domain.NewUpdateError("Only start time of first timeslot can be changed.")
			}
			opts = append(opts, domain.WithForcedStart(*changes.StartTime))
		}

		if changes.DurationMinutes != nil {
			if *changes.DurationMinutes <= 0 {
				return domain.NewUpdateError("Duration must be positive")
			}
			if index := grid.TimeSlotIndex(id); index >= 0 {
				slot := &grid.TimeSlots[index]
				slot.EndTime = slot.StartTime.Add(time.Duration(*changes.DurationMinutes) * time.Minute)
			}
		}

		grid.TimeSlots = domain.RecalculateTimeSlots(grid.TimeSlots, opts...)
		return nil
	}
}

// deleteTimeSlotRecipe removes a slot and parks its sessions ahead of the
// existing parking lot. The grid keeps its original start time.
func deleteTimeSlotRecipe(id domain.TimeSlotID) Recipe {
	return func(grid *domain.SessionGrid) error {
		if len(grid.TimeSlots) <= 1 {
			return domain.NewUpdateError("Can not delete last time slot")
		}

		start := grid.TimeSlots[0].StartTime
		grid.TimeSlots = slices.DeleteFunc(grid.TimeSlots, func(t domain.TimeSlot) bool { return t.ID == id })
		grid.TimeSlots = domain.RecalculateTimeSlots(grid.TimeSlots, domain.WithForcedStart(start))

		var parked []domain.ParkingLotEntry
		grid.Sessions = slices.DeleteFunc(grid.Sessions, func(s domain.Session) bool {
			if s.TimeSlotID != id {
				return false
			}
			parked = append(parked, domain.ParkingLotEntry{TopicID: s.TopicID})
			return true
		})
		grid.ParkingLot = append(parked, grid.ParkingLot...)
		return nil
	}
}

// moveTimeSlotRecipe reorders a slot. The grid keeps its original start time.
func moveTimeSlotRecipe(id domain.TimeSlotID, toIndex int) Recipe {
	return func(grid *domain.SessionGrid) error {
		from := grid.TimeSlotIndex(id)
		if from < 0 {
			return domain.NewUpdateError(fmt.Sprintf("Time slot not found: %s", id))
		}

		start := grid.TimeSlots[0].StartTime
		slot := grid.TimeSlots[from]
		grid.TimeSlots = slices.Delete(grid.TimeSlots, from, from+1)
		grid.TimeSlots = slices.Insert(grid.TimeSlots, clampIndex(toIndex, len(grid.TimeSlots)), slot)
		grid.TimeSlots = domain.RecalculateTimeSlots(grid.TimeSlots, domain.WithForcedStart(start))
		return nil
	}
}

// moveTopicToSessionRecipe places a topic into a free cell, taking it out of
// the parking lot or its previous cell.
func moveTopicToSessionRecipe(topicID domain.TopicID, trackID domain.TrackID, timeSlotID domain.TimeSlotID) Recipe {
	return func(grid *domain.SessionGrid) error {
		if grid.ParkingLotIndex(topicID) < 0 && grid.SessionIndex(topicID) < 0 {
			return domain.NewUpdateError(fmt.Sprintf("Topic not found: %s", topicID))
		}
		if grid.TrackIndex(trackID) < 0 {
			return domain.NewUpdateError(fmt.Sprintf("Track not found: %s", trackID))
		}
		index := grid.TimeSlotIndex(timeSlotID)
		if index < 0 || grid.TimeSlots[index].Kind() != domain.TimeSlotKindSessions {
			return domain.NewUpdateError(fmt.Sprintf("Time slot not found: %s", timeSlotID))
		}
		if occupant, ok := grid.SessionAt(trackID, timeSlotID); ok && occupant.TopicID != topicID {
			return domain.NewUpdateError(fmt.Sprintf("Session already in use: %s, %s", timeSlotID, trackID))
		}

		removeTopic(grid, topicID)
		grid.Sessions = append(grid.Sessions, domain.Session{TopicID: topicID, TrackID: trackID, TimeSlotID: timeSlotID})
		return nil
	}
}

func moveTopicToParkingAreaRecipe(topicID domain.TopicID, toIndex int) Recipe {
	return func(grid *domain.SessionGrid) error {
		if grid.ParkingLotIndex(topicID) < 0 && grid.SessionIndex(topicID) < 0 {
			return domain.NewUpdateError(fmt.Sprintf("Topic not found: %s", topicID))
		}

		removeTopic(grid, topicID)
		entry := domain.ParkingLotEntry{TopicID: topicID}
		grid.ParkingLot = slices.Insert(grid.ParkingLot, clampIndex(toIndex, len(grid.ParkingLot)), entry)
		return nil
	}
}

func deleteTopicRecipe(topicID domain.TopicID) Recipe {
	return func(grid *domain.SessionGrid) error {
		removeTopic(grid, topicID)
		return nil
	}
}

// consumeSubmissionRecipe admits a submission as a parked topic. Consuming
// the same submission twice leaves the grid as it is.
func consumeSubmissionRecipe(submissionID string) Recipe {
	return func(grid *domain.SessionGrid) error {
		if grid.IsConsumed(submissionID) {
			return nil
		}
		grid.ConsumedTopicSubmissions = append(grid.ConsumedTopicSubmissions, submissionID)
		grid.ParkingLot = append([]domain.ParkingLotEntry{{TopicID: domain.TopicID(submissionID)}}, grid.ParkingLot...)
		return nil
	}
}

func removeTopic(grid *domain.SessionGrid, topicID domain.TopicID) {
	grid.ParkingLot = slices.DeleteFunc(grid.ParkingLot, func(e domain.ParkingLotEntry) bool { return e.TopicID == topicID })
	grid.Sessions = slices.DeleteFunc(grid.Sessions, func(s domain.Session) bool { return s.TopicID == topicID })
}

func clampIndex(index, length int) int {
	return max(0, min(index, length))
}
