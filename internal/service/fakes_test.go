package service

import (
	"Mosaic/internal/model"
	"Mosaic/internal/repository"
	"context"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

func duplicateKeyError() error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
}

type voteKey struct {
	userID    uint64
	contentID uint64
}

type fakeVoteRepo struct {
	votes map[voteKey]*model.Vote
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: make(map[voteKey]*model.Vote)}
}

func (s *fakeVoteRepo) WithTx(tx *gorm.DB) repository.VoteRepo { return s }

func (s *fakeVoteRepo) GetVote(ctx context.Context, userID, contentID uint64) (*model.Vote, error) {
	vote, ok := s.votes[voteKey{userID, contentID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *vote
	return &copied, nil
}

func (s *fakeVoteRepo) CreateVote(ctx context.Context, vote *model.Vote) error {
	key := voteKey{vote.UserID, vote.ContentID}
	if _, ok := s.votes[key]; ok {
		return duplicateKeyError()
	}
	copied := *vote
	s.votes[key] = &copied
	return nil
}

func (s *fakeVoteRepo) UpdateVoteKind(ctx context.Context, userID, contentID uint64, kind string) error {
	vote, ok := s.votes[voteKey{userID, contentID}]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	vote.Kind = kind
	return nil
}

func (s *fakeVoteRepo) DeleteVote(ctx context.Context, userID, contentID uint64) error {
	delete(s.votes, voteKey{userID, contentID})
	return nil
}

func (s *fakeVoteRepo) CountVotes(ctx context.Context, contentID uint64) (*model.VoteCounts, error) {
	counts := &model.VoteCounts{}
	for _, vote := range s.votes {
		if vote.ContentID != contentID {
			continue
		}
		switch vote.Kind {
		case model.VoteKindUp:
			counts.Up++
		case model.VoteKindDown:
			counts.Down++
		case model.VoteKindSuperUp:
			counts.SuperUp++
		}
	}
	return counts, nil
}

func (s *fakeVoteRepo) GetSuperUpvoteSince(ctx context.Context, userID uint64, since time.Time) (*model.Vote, error) {
	for _, vote := range s.votes {
		if vote.UserID == userID && vote.Kind == model.VoteKindSuperUp && !vote.CreatedAt.Before(since) {
			copied := *vote
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeVoteRepo) GetVotedContentIDs(ctx context.Context, userID uint64, contentIDs []uint64) (map[uint64]string, error) {
	result := make(map[uint64]string)
	for _, id := range contentIDs {
		if vote, ok := s.votes[voteKey{userID, id}]; ok {
			result[id] = vote.Kind
		}
	}
	return result, nil
}

type fakeContentRepo struct {
	contents map[uint64]*model.Content
}

func newFakeContentRepo(contents ...*model.Content) *fakeContentRepo {
	repo := &fakeContentRepo{contents: make(map[uint64]*model.Content)}
	for _, content := range contents {
		repo.contents[content.ID] = content
	}
	return repo
}

func (s *fakeContentRepo) WithTx(tx *gorm.DB) repository.ContentRepo { return s }

func (s *fakeContentRepo) CreateContent(ctx context.Context, content *model.Content, media []*model.ContentMedia, hashtags []string) error {
	s.contents[content.ID] = content
	return nil
}

func (s *fakeContentRepo) GetContent(ctx context.Context, id uint64) (*model.Content, error) {
	content, ok := s.contents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return content, nil
}

func (s *fakeContentRepo) GetContentForUpdate(ctx context.Context, id uint64) (*model.Content, error) {
	return s.GetContent(ctx, id)
}

func (s *fakeContentRepo) GetContentByIds(ctx context.Context, ids []uint64) ([]*model.Content, error) {
	var result []*model.Content
	for _, id := range ids {
		if content, ok := s.contents[id]; ok {
			result = append(result, content)
		}
	}
	return result, nil
}

func (s *fakeContentRepo) UpdateContent(ctx context.Context, content *model.Content, media []*model.ContentMedia, hashtags []string) error {
	s.contents[content.ID] = content
	return nil
}

func (s *fakeContentRepo) DeleteContent(ctx context.Context, id uint64) error {
	delete(s.contents, id)
	return nil
}

func (s *fakeContentRepo) UpdateScoreAndArchived(ctx context.Context, id uint64, score float64, archived bool) error {
	content, ok := s.contents[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	content.Score = score
	content.IsArchived = archived
	return nil
}

func (s *fakeContentRepo) IncrementViewCount(ctx context.Context, id uint64) error {
	if content, ok := s.contents[id]; ok {
		content.ViewCount++
	}
	return nil
}

func (s *fakeContentRepo) IncrementRemixCount(ctx context.Context, id uint64, delta int) error {
	if content, ok := s.contents[id]; ok {
		content.RemixCount += delta
	}
	return nil
}

func (s *fakeContentRepo) ListFeed(ctx context.Context, contentType, sort string, limit, offset int) ([]*model.Content, error) {
	return nil, nil
}

func (s *fakeContentRepo) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Content, error) {
	return nil, nil
}

func (s *fakeContentRepo) ListRemixesOf(ctx context.Context, contentID uint64, limit, offset int) ([]*model.Content, error) {
	return nil, nil
}

func (s *fakeContentRepo) ListTopByScore(ctx context.Context, limit int) ([]*model.Content, error) {
	return nil, nil
}

func (s *fakeContentRepo) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	return 0, nil
}

type fakeUserRepo struct {
	users map[uint64]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uint64]*model.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (s *fakeUserRepo) WithTx(tx *gorm.DB) repository.UserRepo { return s }

func (s *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserRepo) GetUserByID(ctx context.Context, id uint64) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserRepo) UpdateUser(ctx context.Context, id uint64, updates map[string]interface{}) error {
	return nil
}

func (s *fakeUserRepo) DeleteUser(ctx context.Context, id uint64) error {
	delete(s.users, id)
	return nil
}

func (s *fakeUserRepo) ConsumeSuperUpvoteAllowance(ctx context.Context, userID uint64, dayStart, now time.Time) (bool, error) {
	user, ok := s.users[userID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if user.LastSuperUpvoteAt != nil && !user.LastSuperUpvoteAt.Before(dayStart) {
		return false, nil
	}
	used := now
	user.LastSuperUpvoteAt = &used
	return true, nil
}

type answerVoteKey struct {
	userID    uint64
	contentID uint64
}

type fakeAnswerRepo struct {
	answers map[uint64]*model.QAAnswer
	votes   map[answerVoteKey]*model.QAAnswerVote
}

func newFakeAnswerRepo(answers ...*model.QAAnswer) *fakeAnswerRepo {
	repo := &fakeAnswerRepo{
		answers: make(map[uint64]*model.QAAnswer),
		votes:   make(map[answerVoteKey]*model.QAAnswerVote),
	}
	for _, answer := range answers {
		repo.answers[answer.ID] = answer
	}
	return repo
}

func (s *fakeAnswerRepo) WithTx(tx *gorm.DB) repository.AnswerRepo { return s }

func (s *fakeAnswerRepo) CreateAnswer(ctx context.Context, answer *model.QAAnswer) error {
	for _, existing := range s.answers {
		if existing.ContentID == answer.ContentID && existing.UserID == answer.UserID {
			return duplicateKeyError()
		}
	}
	if answer.ID == 0 {
		answer.ID = uint64(len(s.answers) + 1)
	}
	s.answers[answer.ID] = answer
	return nil
}

func (s *fakeAnswerRepo) GetAnswer(ctx context.Context, id uint64) (*model.QAAnswer, error) {
	answer, ok := s.answers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return answer, nil
}

func (s *fakeAnswerRepo) GetAnswerForUpdate(ctx context.Context, id uint64) (*model.QAAnswer, error) {
	return s.GetAnswer(ctx, id)
}

func (s *fakeAnswerRepo) GetAnswerByUser(ctx context.Context, contentID, userID uint64) (*model.QAAnswer, error) {
	for _, answer := range s.answers {
		if answer.ContentID == contentID && answer.UserID == userID {
			return answer, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeAnswerRepo) ListAnswers(ctx context.Context, contentID uint64) ([]*model.QAAnswer, error) {
	var result []*model.QAAnswer
	for _, answer := range s.answers {
		if answer.ContentID == contentID {
			result = append(result, answer)
		}
	}
	return result, nil
}

func (s *fakeAnswerRepo) CountAnswers(ctx context.Context, contentID uint64) (int64, error) {
	var count int64
	for _, answer := range s.answers {
		if answer.ContentID == contentID {
			count++
		}
	}
	return count, nil
}

func (s *fakeAnswerRepo) UpdateAnswerScore(ctx context.Context, id uint64, score float64) error {
	answer, ok := s.answers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	answer.Score = score
	return nil
}

func (s *fakeAnswerRepo) DeleteAnswersByContent(ctx context.Context, contentID uint64) error {
	for id, answer := range s.answers {
		if answer.ContentID == contentID {
			delete(s.answers, id)
		}
	}
	return nil
}

func (s *fakeAnswerRepo) GetAnswerVote(ctx context.Context, userID, contentID uint64) (*model.QAAnswerVote, error) {
	vote, ok := s.votes[answerVoteKey{userID, contentID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *vote
	return &copied, nil
}

func (s *fakeAnswerRepo) CreateAnswerVote(ctx context.Context, vote *model.QAAnswerVote) error {
	key := answerVoteKey{vote.UserID, vote.ContentID}
	if _, ok := s.votes[key]; ok {
		return duplicateKeyError()
	}
	copied := *vote
	s.votes[key] = &copied
	return nil
}

func (s *fakeAnswerRepo) DeleteAnswerVote(ctx context.Context, userID, contentID uint64) error {
	delete(s.votes, answerVoteKey{userID, contentID})
	return nil
}

func (s *fakeAnswerRepo) CountAnswerVotes(ctx context.Context, answerID uint64) (up, down int64, err error) {
	for _, vote := range s.votes {
		if vote.AnswerID != answerID {
			continue
		}
		switch vote.Kind {
		case model.VoteKindUp:
			up++
		case model.VoteKindDown:
			down++
		}
	}
	return up, down, nil
}

func (s *fakeAnswerRepo) GetAnswerVotesByUser(ctx context.Context, userID uint64, contentIDs []uint64) (map[uint64]*model.QAAnswerVote, error) {
	result := make(map[uint64]*model.QAAnswerVote)
	for _, id := range contentIDs {
		if vote, ok := s.votes[answerVoteKey{userID, id}]; ok {
			result[id] = vote
		}
	}
	return result, nil
}
